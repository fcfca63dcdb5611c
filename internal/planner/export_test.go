package planner

// LockedSessions is the number of sessions in the lock table.
func (s *Service) LockedSessions() int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.locks)
}
