package entity

// FilterSelection is the set of speciality names a user has checked.
// An empty selection means no filter is applied.
//
// Names are kept in the order they were added so the selection renders
// consistently; membership is all that matters for filtering.
type FilterSelection struct {
	names []string
	index map[string]struct{}
}

func NewFilterSelection(names ...string) *FilterSelection {
	s := &FilterSelection{index: make(map[string]struct{})}
	for _, name := range names {
		if !s.Has(name) {
			s.add(name)
		}
	}
	return s
}

// Toggle removes name when it is selected and adds it otherwise.
// Names unknown to the directory are accepted; they never match a doctor.
func (s *FilterSelection) Toggle(name string) {
	if s.Has(name) {
		s.remove(name)
		return
	}
	s.add(name)
}

// Clear empties the selection unconditionally.
func (s *FilterSelection) Clear() {
	s.names = nil
	s.index = make(map[string]struct{})
}

func (s *FilterSelection) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

func (s *FilterSelection) IsEmpty() bool {
	return s == nil || len(s.names) == 0
}

func (s *FilterSelection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns a copy of the selected names.
func (s *FilterSelection) Names() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *FilterSelection) Clone() *FilterSelection {
	return NewFilterSelection(s.Names()...)
}

// Equal compares selections as sets.
func (s *FilterSelection) Equal(other *FilterSelection) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, name := range s.Names() {
		if !other.Has(name) {
			return false
		}
	}
	return true
}

func (s *FilterSelection) add(name string) {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
}

func (s *FilterSelection) remove(name string) {
	delete(s.index, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i:i], s.names[i+1:]...)
			return
		}
	}
}
