package domain

// SortOrder names a field to sort on and the direction, as it arrives from
// query parameters.
type SortOrder struct {
	Sort  string `bson:"sort" json:"sort"`
	Order string `bson:"order" json:"order"`
}

// Direction maps the order string onto the driver's sort value. Anything
// other than "desc" sorts ascending.
func (s SortOrder) Direction() int {
	if s.Order == "desc" {
		return -1
	}
	return 1
}
