package domain

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"

	DefaultSort = "createdAt"
	MaxLimit    = 100
)

// ListQuery controls ordering and paging of list endpoints. Limit 0 means
// no limit; Page only applies when Limit is set.
type ListQuery struct {
	Sort  string
	Order string
	Limit int
	Page  int
}

func DefaultListQuery() ListQuery {
	return ListQuery{Sort: DefaultSort, Order: OrderDesc, Page: 1}
}

// IsDefault reports whether q is the unparameterised list, the one served
// from cache.
func (q ListQuery) IsDefault() bool {
	return q == DefaultListQuery()
}

func (q ListQuery) Desc() bool {
	return q.Order != OrderAsc
}

func (q ListQuery) Offset() int {
	if q.Limit <= 0 || q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// MessageQuery adds the inbox filters to ListQuery.
type MessageQuery struct {
	ListQuery
	Unread bool
	Search string
}

// Sortable fields per entity, by JSON name.
var (
	AboutSortFields      = []string{"createdAt", "updatedAt", "name"}
	ProjectSortFields    = []string{"createdAt", "updatedAt", "title"}
	SkillSortFields      = []string{"createdAt", "updatedAt", "name", "level"}
	ExperienceSortFields = []string{"createdAt", "updatedAt", "startDate", "company"}
	EducationSortFields  = []string{"createdAt", "updatedAt", "startDate", "school"}
	MessageSortFields    = []string{"createdAt", "name", "email", "subject"}
)
