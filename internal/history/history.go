// Package history keeps the assistant conversation and, optionally, a SQLite
// transcript of it. The transcript is write-only: sessions never reload it.
package history

import (
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	"github.com/ehudso7/StatTact/internal/logger"
)

// Store persists transcript messages in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and makes sure
// the messages table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open transcript db: %w", err)
	}
	if _, err = db.Exec(`CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		role TEXT NOT NULL,
		name TEXT,
		tool_call_id TEXT,
		content TEXT,
		created_at DATETIME
	);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create messages table: %w", err)
	}
	logger.L.Info("sqlite transcript DB initialized", "path", path)
	return &Store{db: db}, nil
}

// Save appends msg to the transcript.
func (s *Store) Save(msg Message) error {
	_, err := s.db.Exec(`INSERT INTO messages (session_id, seq, role, name, tool_call_id, content, created_at) VALUES (?,?,?,?,?,?,?);`,
		msg.SessionID, msg.Seq, msg.Role, msg.Name, msg.ToolCallID, msg.Content, msg.CreatedAt)
	return err
}

// List returns all messages of a session in the order they were appended.
func (s *Store) List(sessionID string) ([]Message, error) {
	rows, err := s.db.Query(`SELECT id, session_id, seq, role, name, tool_call_id, content, created_at FROM messages WHERE session_id = ? ORDER BY seq ASC;`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Seq, &m.Role, &m.Name, &m.ToolCallID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
