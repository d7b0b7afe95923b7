package screens

// SwitchScreenMsg asks the root screen to show another screen.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

// Loaded messages carry the generation of the fetch that produced them so
// results of a superseded fetch can be told apart.
type charactersLoadedMsg struct {
	ok  bool
	gen int
}

type episodesLoadedMsg struct {
	ok  bool
	gen int
}
