package basicstorage

func (s *Storage) LoadUsers() (map[string]string, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if s.usersFile != "" {
		users := make(map[string]string)
		if err := readJSON(s.usersFile, &users); err != nil {
			return nil, err
		}
		s.users = users
	}

	return s.users, nil
}

func (s *Storage) SaveUsers(users map[string]string) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if s.usersFile != "" {
		if err := writeJSON(s.usersFile, users); err != nil {
			return err
		}
	}
	s.users = users

	return nil
}
