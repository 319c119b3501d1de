package service

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/promptsave/promptsave/internal/models"
)

// SortOrder selects the comparator for prompt listings.
type SortOrder string

const (
	SortCreatedDesc SortOrder = "createdAt_desc"
	SortCreatedAsc  SortOrder = "createdAt_asc"
	SortTitleAsc    SortOrder = "title_asc"
	SortTitleDesc   SortOrder = "title_desc"
	SortTypeAsc     SortOrder = "promptType_asc"
	SortTypeDesc    SortOrder = "promptType_desc"
)

// OrDefault resolves the zero value to the default newest-first order.
func (o SortOrder) OrDefault() SortOrder {
	if o == "" {
		return SortCreatedDesc
	}
	return o
}

// SortOrders lists the selectable orders in cycle order.
var SortOrders = []SortOrder{
	SortCreatedDesc,
	SortCreatedAsc,
	SortTitleAsc,
	SortTitleDesc,
	SortTypeAsc,
	SortTypeDesc,
}

// Query filters and orders a prompt listing. Zero values mean "no filter";
// the folder filter accepts FolderAll, FolderNone or a folder id.
type Query struct {
	FolderID   string
	Color      string
	PromptType string
	Search     string
	Sort       SortOrder
}

// FilterPrompts returns the prompts matching the query, sorted. The search
// term matches title, content, model and prompt type case-insensitively.
func (s *Service) FilterPrompts(q Query) []*models.Prompt {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	var result []*models.Prompt
	for _, p := range s.prompts {
		if !folderMatches(q.FolderID, p.FolderID) {
			continue
		}
		if q.Color != "" && p.Color != q.Color {
			continue
		}
		if q.PromptType != "" && p.PromptType != q.PromptType {
			continue
		}
		if search != "" && !promptMatches(p, search) {
			continue
		}
		result = append(result, p)
	}

	sortPrompts(result, q.Sort)
	return result
}

// SearchPrompts ranks the whole library against a query with fuzzy matching
// on titles, falling back to the plain filter when fuzziness finds nothing.
func (s *Service) SearchPrompts(query string) []*models.Prompt {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.FilterPrompts(Query{})
	}

	titles := make([]string, len(s.prompts))
	for i, p := range s.prompts {
		titles[i] = p.Title
	}

	matches := fuzzy.Find(query, titles)
	if len(matches) == 0 {
		return s.FilterPrompts(Query{Search: query})
	}

	result := make([]*models.Prompt, 0, len(matches))
	for _, m := range matches {
		result = append(result, s.prompts[m.Index])
	}
	return result
}

func folderMatches(filter, folderID string) bool {
	switch filter {
	case "", FolderAll:
		return true
	case FolderNone:
		return folderID == ""
	default:
		return folderID == filter
	}
}

func promptMatches(p *models.Prompt, search string) bool {
	return strings.Contains(strings.ToLower(p.Title), search) ||
		strings.Contains(strings.ToLower(p.Content), search) ||
		strings.Contains(strings.ToLower(p.Model), search) ||
		strings.Contains(strings.ToLower(p.PromptType), search)
}

func sortPrompts(prompts []*models.Prompt, order SortOrder) {
	var less func(a, b *models.Prompt) bool
	switch order {
	case SortCreatedAsc:
		less = func(a, b *models.Prompt) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortTitleAsc:
		less = func(a, b *models.Prompt) bool { return titleLess(a.Title, b.Title) }
	case SortTitleDesc:
		less = func(a, b *models.Prompt) bool { return titleLess(b.Title, a.Title) }
	case SortTypeAsc:
		less = func(a, b *models.Prompt) bool { return titleLess(a.PromptType, b.PromptType) }
	case SortTypeDesc:
		less = func(a, b *models.Prompt) bool { return titleLess(b.PromptType, a.PromptType) }
	default: // SortCreatedDesc
		less = func(a, b *models.Prompt) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(prompts, func(i, j int) bool { return less(prompts[i], prompts[j]) })
}

func titleLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
