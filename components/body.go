package components

// Body holds physical properties of an entity.
type Body struct {
	Radius float64
}

// Tag marks an entity that tag range queries can find.
type Tag struct {
	Name string
}
