package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON array in a single column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// Quiz is one generated quiz row.
type Quiz struct {
	ID            string      `db:"id"`
	Title         string      `db:"title"`
	Summary       string      `db:"summary"`
	People        StringSlice `db:"people"`
	Organizations StringSlice `db:"organizations"`
	Locations     StringSlice `db:"locations"`
	Sections      StringSlice `db:"sections"`
	RelatedTopics StringSlice `db:"related_topics"`
	WikipediaURL  string      `db:"wikipedia_url"`
	CreatedAt     time.Time   `db:"created_at"`
}

// QuizQuestion is one question row, foreign-keyed to its quiz. Position keeps
// the model's original ordering.
type QuizQuestion struct {
	ID            string      `db:"id"`
	QuizID        string      `db:"quiz_id"`
	Position      int         `db:"position"`
	Question      string      `db:"question"`
	Options       StringSlice `db:"options"`
	CorrectAnswer string      `db:"correct_answer"`
	Difficulty    string      `db:"difficulty"`
	Explanation   string      `db:"explanation"`
}

// QuizAttempt is one completed attempt row.
type QuizAttempt struct {
	ID        string    `db:"id"`
	QuizID    string    `db:"quiz_id"`
	Score     int       `db:"score"`
	Total     int       `db:"total"`
	CreatedAt time.Time `db:"created_at"`
}
