package entity

// Region agrupación geográfica de primer nivel (nombre único).
type Region struct {
	ID   int64
	Name string
}

// Zone zona dentro de una región; el nombre es único por región.
type Zone struct {
	ID       int64
	RegionID int64
	Name     string
}
