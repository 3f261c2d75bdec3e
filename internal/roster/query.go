package roster

// StatusFilter narrows the roster to one activity state.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
)

// SortDirection orders the projected rows.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sortable record attributes. These mirror the scalar columns the roster
// tables display.
const (
	FieldFirstName   = "f_name"
	FieldLastName    = "l_name"
	FieldEmail       = "email"
	FieldNationalID  = "nic"
	FieldContact     = "contact"
	FieldDateOfBirth = "dob"
	FieldRoleID      = "role_id"
)

// ViewQuery is the operator's current search/filter/sort selection. It is
// created with defaults when a screen mounts and mutated only by operator
// input; it is never reset while the screen lives.
type ViewQuery struct {
	SearchTerm string
	Status     StatusFilter
	SortField  string
	Direction  SortDirection
}

// NewViewQuery returns the mount-time defaults.
func NewViewQuery() ViewQuery {
	return ViewQuery{
		Status:    StatusAll,
		SortField: FieldFirstName,
		Direction: SortAsc,
	}
}

// SetSearchTerm replaces the free-text search. Any string is accepted,
// including empty.
func (q *ViewQuery) SetSearchTerm(term string) {
	q.SearchTerm = term
}

// SetStatus replaces the status filter, falling back to "all" for unknown
// values.
func (q *ViewQuery) SetStatus(f StatusFilter) {
	switch f {
	case StatusActive, StatusInactive:
		q.Status = f
	default:
		q.Status = StatusAll
	}
}

// SetSort assigns the sort column and direction outright, without the
// re-selection toggle. Unknown directions fall back to ascending.
func (q *ViewQuery) SetSort(field string, dir SortDirection) {
	q.SortField = field
	if dir == SortDesc {
		q.Direction = SortDesc
		return
	}
	q.Direction = SortAsc
}

// SetSortField selects the sort column. Re-selecting the active column flips
// the direction; selecting a new column resets the direction to ascending.
func (q *ViewQuery) SetSortField(field string) {
	if field == q.SortField {
		if q.Direction == SortAsc {
			q.Direction = SortDesc
		} else {
			q.Direction = SortAsc
		}
		return
	}
	q.SortField = field
	q.Direction = SortAsc
}
