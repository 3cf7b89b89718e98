package animation

// Set plays its members together and ends once every member has ended.
type Set struct {
	members   []Animation
	remaining int
	started   bool
	done      bool
	listeners listeners
}

// Together builds a Set from the given animations. Nil members are skipped.
func Together(anims ...Animation) *Set {
	s := &Set{}
	for _, a := range anims {
		if a != nil {
			s.members = append(s.members, a)
		}
	}
	return s
}

// Len returns the number of non-nil members.
func (s *Set) Len() int {
	return len(s.members)
}

// Members returns the animations played by the set.
func (s *Set) Members() []Animation {
	return s.members
}

// Start starts every member. An empty set ends immediately.
func (s *Set) Start() {
	if s.started || s.done {
		return
	}
	s.started = true
	s.remaining = len(s.members)
	if s.remaining == 0 {
		s.finish()
		return
	}
	for _, m := range s.members {
		m.AddEndListener(s.memberEnded)
	}
	for _, m := range s.members {
		m.Start()
	}
}

func (s *Set) memberEnded() {
	if !s.started || s.done {
		return
	}
	s.remaining--
	if s.remaining == 0 {
		s.finish()
	}
}

func (s *Set) finish() {
	s.started = false
	s.done = true
	s.listeners.fire()
}

// Cancel cancels every member. Listeners registered on the set do not fire.
func (s *Set) Cancel() {
	if s.done {
		return
	}
	s.done = true
	s.started = false
	for _, m := range s.members {
		m.Cancel()
	}
}

// IsStarted reports whether the set is currently playing.
func (s *Set) IsStarted() bool {
	return s.started && !s.done
}

// AddEndListener registers fn to run when the whole set ends.
func (s *Set) AddEndListener(fn func()) {
	s.listeners.add(fn)
}

// RemoveAllListeners drops the set's own end listeners.
func (s *Set) RemoveAllListeners() {
	s.listeners.clear()
}
