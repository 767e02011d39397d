package pretenddb

// Session runs statements against a Server on behalf of one client,
// remembering the current database across USE statements.
type Session struct {
	server   *Server
	database string
}

func (s *Session) Database() string {
	return s.database
}

func (s *Session) Server() *Server {
	return s.server
}

// Execute runs query with params bound to its placeholders in order.
func (s *Session) Execute(query string, params ...interface{}) (*QueryResult, error) {
	res, err := s.server.ExecuteQuery(query, params, s.database)
	if err != nil {
		return nil, err
	}
	s.database = res.CurrentDatabase
	return res, nil
}
