package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type WallTag struct {
	Crate bool
}

var WallTagComponent = NewComponent[WallTag]()
