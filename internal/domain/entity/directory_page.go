package entity

// DirectoryPage is everything a renderer needs for one paint of the directory.
// Doctors holds the filtered and ordered view; Total counts the full list.
type DirectoryPage struct {
	State        LoadState
	Specialities []string
	Selection    *FilterSelection
	Doctors      []Doctor
	Total        int
}
