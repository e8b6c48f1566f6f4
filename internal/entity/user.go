package entity

type User struct {
	Base

	Name string

	// PointBalance is a cached fold of the user's point transactions. The
	// transaction log is the source of truth; this column exists so reads
	// need not re-fold, and Version guards every write to it.
	PointBalance int64
	Version      int64
}
