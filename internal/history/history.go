// Package history records the completions a user accepts, so they can be
// reviewed per command.
package history

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// AcceptedCompletion is one candidate the user spliced into a command line.
type AcceptedCompletion struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	Command   string `gorm:"index"`
	Word      string
	Candidate string
	Directory string
}

// CandidateCount is how often a candidate was accepted for a command.
type CandidateCount struct {
	Candidate string
	Count     int64
}

// AcceptanceLog stores accepted completions in a SQLite database.
type AcceptanceLog struct {
	db *gorm.DB
}

// NewAcceptanceLog opens (creating if needed) the database at dbFilePath.
func NewAcceptanceLog(dbFilePath string) (*AcceptanceLog, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening completion history: %w", err)
	}

	if err := db.AutoMigrate(&AcceptedCompletion{}); err != nil {
		return nil, fmt.Errorf("error migrating completion history: %w", err)
	}

	return &AcceptanceLog{db: db}, nil
}

// Record stores an accepted completion. command is the first word of the
// line and word the text the candidate replaced.
func (l *AcceptanceLog) Record(command, word, candidate, directory string) (*AcceptedCompletion, error) {
	entry := AcceptedCompletion{
		Command:   command,
		Word:      word,
		Candidate: candidate,
		Directory: directory,
	}

	result := l.db.Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

// Recent returns the latest accepted completions, newest first. An empty
// command matches every command.
func (l *AcceptanceLog) Recent(command string, limit int) ([]AcceptedCompletion, error) {
	var entries []AcceptedCompletion
	db := l.db
	if command != "" {
		db = db.Where("command = ?", command)
	}
	result := db.Order("created_at desc, id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// TopCandidates returns the candidates accepted most often for command.
func (l *AcceptanceLog) TopCandidates(command string, limit int) ([]CandidateCount, error) {
	var counts []CandidateCount
	result := l.db.Model(&AcceptedCompletion{}).
		Select("candidate, count(*) as count").
		Where("command = ?", command).
		Group("candidate").
		Order("count desc, candidate").
		Limit(limit).
		Scan(&counts)
	if result.Error != nil {
		return nil, result.Error
	}

	return counts, nil
}

// Reset deletes all recorded completions.
func (l *AcceptanceLog) Reset() error {
	result := l.db.Exec("DELETE FROM accepted_completions")
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// Close closes the underlying database.
func (l *AcceptanceLog) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
