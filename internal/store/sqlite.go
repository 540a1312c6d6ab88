// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fluentband/backend/internal/domain/attempt"
	"github.com/fluentband/backend/internal/domain/question"
	"github.com/fluentband/backend/internal/domain/writingprompt"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT NOT NULL,
    mode TEXT NOT NULL,
    overall_band REAL DEFAULT 0.0,
    attempt_count INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS attempts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL,
    timestamp TEXT NOT NULL,
    part INTEGER DEFAULT 0,
    topic TEXT DEFAULT '',
    question_text TEXT DEFAULT '',
    transcript TEXT DEFAULT '',
    duration REAL DEFAULT 0.0,
    overall_band REAL DEFAULT 0.0,
    fluency_coherence REAL DEFAULT 0.0,
    lexical_resource REAL DEFAULT 0.0,
    grammatical_range REAL DEFAULT 0.0,
    pronunciation REAL DEFAULT 0.0,
    speech_rate REAL DEFAULT 0.0,
    pause_ratio REAL DEFAULT 0.0,
    pronunciation_confidence REAL DEFAULT 0.0,
    examiner_feedback TEXT DEFAULT '',
    grammar_corrections TEXT DEFAULT '',
    vocabulary_upgrades TEXT DEFAULT '',
    improvement_tips TEXT DEFAULT '',
    band9_answer TEXT DEFAULT '',
    strengths TEXT DEFAULT '',
    pronunciation_warnings TEXT DEFAULT '',
    source TEXT DEFAULT '',
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);

CREATE TABLE IF NOT EXISTS writing_attempts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL,
    timestamp TEXT NOT NULL,
    prompt_id INTEGER DEFAULT 0,
    task_type INTEGER DEFAULT 0,
    essay_text TEXT DEFAULT '',
    word_count INTEGER DEFAULT 0,
    task_score REAL DEFAULT 0.0,
    coherence_score REAL DEFAULT 0.0,
    lexical_score REAL DEFAULT 0.0,
    grammar_score REAL DEFAULT 0.0,
    overall_band REAL DEFAULT 0.0,
    examiner_feedback TEXT DEFAULT '',
    paragraph_feedback TEXT DEFAULT '',
    grammar_corrections TEXT DEFAULT '',
    vocabulary_upgrades TEXT DEFAULT '',
    improvement_tips TEXT DEFAULT '',
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);

CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    part INTEGER NOT NULL,
    topic TEXT DEFAULT '',
    question_text TEXT NOT NULL,
    cue_card TEXT DEFAULT '',
    source TEXT DEFAULT '',
    band9_answer TEXT DEFAULT ''
);

CREATE TABLE IF NOT EXISTS writing_prompts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    test_type TEXT NOT NULL,
    task_type INTEGER NOT NULL,
    topic TEXT DEFAULT '',
    prompt_text TEXT NOT NULL,
    chart_image_path TEXT DEFAULT '',
    task1_data_json TEXT DEFAULT ''
);
`

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Sessions
// ============================================================================

func (s *SQLiteStore) CreateSession(ctx context.Context, mode attempt.Mode) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (timestamp, mode) VALUES (?, ?)",
		time.Now().UTC().Format(time.RFC3339), string(mode),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) GetRecentSessions(ctx context.Context, limit int) ([]attempt.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, timestamp, mode, overall_band, attempt_count FROM sessions ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []attempt.SessionRecord
	for rows.Next() {
		var rec attempt.SessionRecord
		var ts, mode string
		if err := rows.Scan(&rec.ID, &ts, &mode, &rec.OverallBand, &rec.AttemptCount); err != nil {
			return nil, err
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339, ts)
		rec.Mode = attempt.Mode(mode)
		sessions = append(sessions, rec)
	}
	return sessions, rows.Err()
}

// updateSessionStats recomputes a session's attempt count and mean band
// after every saved attempt, so session listings never need a join.
func (s *SQLiteStore) updateSessionStats(ctx context.Context, sessionID int64) error {
	var cnt int
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), AVG(overall_band) FROM attempts WHERE session_id = ?",
		sessionID,
	).Scan(&cnt, &avg)
	if err != nil {
		return err
	}
	band := 0.0
	if avg.Valid {
		band = math.Round(avg.Float64*2) / 2
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE sessions SET attempt_count = ?, overall_band = ? WHERE id = ?",
		cnt, band, sessionID,
	)
	return err
}

// ============================================================================
// Speaking attempts
// ============================================================================

func (s *SQLiteStore) SaveAttempt(ctx context.Context, rec *attempt.AttemptRecord) (int64, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (
            session_id, timestamp, part, topic, question_text, transcript,
            duration, overall_band, fluency_coherence, lexical_resource,
            grammatical_range, pronunciation, speech_rate, pause_ratio,
            pronunciation_confidence, examiner_feedback,
            grammar_corrections, vocabulary_upgrades, improvement_tips,
            band9_answer, strengths, pronunciation_warnings, source
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Timestamp.Format(time.RFC3339), rec.Part, rec.Topic,
		rec.QuestionText, rec.Transcript, rec.Duration, rec.OverallBand,
		rec.FluencyCoherence, rec.LexicalResource, rec.GrammaticalRange,
		rec.Pronunciation, rec.SpeechRate, rec.PauseRatio,
		rec.PronunciationConfidence, rec.ExaminerFeedback,
		rec.GrammarCorrections, rec.VocabularyUpgrades, rec.ImprovementTips,
		rec.Band9Answer, rec.Strengths, rec.PronunciationWarnings, rec.Source,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := s.updateSessionStats(ctx, rec.SessionID); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *SQLiteStore) GetAttemptsForSession(ctx context.Context, sessionID int64) ([]attempt.AttemptRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, timestamp, part, topic, question_text, transcript,
            duration, overall_band, fluency_coherence, lexical_resource,
            grammatical_range, pronunciation, speech_rate, pause_ratio,
            pronunciation_confidence, examiner_feedback,
            grammar_corrections, vocabulary_upgrades, improvement_tips,
            band9_answer, strengths, pronunciation_warnings, source
        FROM attempts WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []attempt.AttemptRecord
	for rows.Next() {
		var rec attempt.AttemptRecord
		var ts string
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &ts, &rec.Part, &rec.Topic,
			&rec.QuestionText, &rec.Transcript, &rec.Duration, &rec.OverallBand,
			&rec.FluencyCoherence, &rec.LexicalResource, &rec.GrammaticalRange,
			&rec.Pronunciation, &rec.SpeechRate, &rec.PauseRatio,
			&rec.PronunciationConfidence, &rec.ExaminerFeedback,
			&rec.GrammarCorrections, &rec.VocabularyUpgrades, &rec.ImprovementTips,
			&rec.Band9Answer, &rec.Strengths, &rec.PronunciationWarnings, &rec.Source,
		); err != nil {
			return nil, err
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339, ts)
		attempts = append(attempts, rec)
	}
	return attempts, rows.Err()
}

// ============================================================================
// Writing attempts
// ============================================================================

func (s *SQLiteStore) SaveWritingAttempt(ctx context.Context, rec *attempt.WritingAttemptRecord) (int64, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO writing_attempts (
            session_id, timestamp, prompt_id, task_type, essay_text, word_count,
            task_score, coherence_score, lexical_score, grammar_score,
            overall_band, examiner_feedback, paragraph_feedback,
            grammar_corrections, vocabulary_upgrades, improvement_tips
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Timestamp.Format(time.RFC3339), rec.PromptID,
		rec.TaskType, rec.EssayText, rec.WordCount, rec.TaskScore,
		rec.CoherenceScore, rec.LexicalScore, rec.GrammarScore, rec.OverallBand,
		rec.ExaminerFeedback, rec.ParagraphFeedback, rec.GrammarCorrections,
		rec.VocabularyUpgrades, rec.ImprovementTips,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) GetWritingAttemptsForSession(ctx context.Context, sessionID int64) ([]attempt.WritingAttemptRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, timestamp, prompt_id, task_type, essay_text,
            word_count, task_score, coherence_score, lexical_score,
            grammar_score, overall_band, examiner_feedback, paragraph_feedback,
            grammar_corrections, vocabulary_upgrades, improvement_tips
        FROM writing_attempts WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []attempt.WritingAttemptRecord
	for rows.Next() {
		var rec attempt.WritingAttemptRecord
		var ts string
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &ts, &rec.PromptID, &rec.TaskType,
			&rec.EssayText, &rec.WordCount, &rec.TaskScore, &rec.CoherenceScore,
			&rec.LexicalScore, &rec.GrammarScore, &rec.OverallBand,
			&rec.ExaminerFeedback, &rec.ParagraphFeedback,
			&rec.GrammarCorrections, &rec.VocabularyUpgrades, &rec.ImprovementTips,
		); err != nil {
			return nil, err
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339, ts)
		attempts = append(attempts, rec)
	}
	return attempts, rows.Err()
}

// ============================================================================
// Trend analysis
// ============================================================================

func (s *SQLiteStore) GetBandTrend(ctx context.Context, limit int) ([]BandPoint, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT timestamp, overall_band FROM attempts ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []BandPoint
	for rows.Next() {
		var p BandPoint
		if err := rows.Scan(&p.Timestamp, &p.OverallBand); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	reverse(points) // oldest first
	return points, nil
}

func (s *SQLiteStore) GetCriterionTrends(ctx context.Context, limit int) ([]CriterionPoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, fluency_coherence, lexical_resource,
            grammatical_range, pronunciation
        FROM attempts ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []CriterionPoint
	for rows.Next() {
		var p CriterionPoint
		if err := rows.Scan(&p.Timestamp, &p.FluencyCoherence, &p.LexicalResource,
			&p.GrammaticalRange, &p.Pronunciation); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	reverse(points)
	return points, nil
}

// GetWeakAreas averages the four criteria over the last 20 attempts.
func (s *SQLiteStore) GetWeakAreas(ctx context.Context) (map[string]float64, error) {
	var fc, lr, gr, pr sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(fluency_coherence), AVG(lexical_resource),
            AVG(grammatical_range), AVG(pronunciation)
        FROM (SELECT * FROM attempts ORDER BY id DESC LIMIT 20)`,
	).Scan(&fc, &lr, &gr, &pr)
	if err != nil {
		return nil, err
	}
	if !fc.Valid {
		return map[string]float64{}, nil
	}
	return map[string]float64{
		"Fluency & Coherence": round1(fc.Float64),
		"Lexical Resource":    round1(lr.Float64),
		"Grammar":             round1(gr.Float64),
		"Pronunciation":       round1(pr.Float64),
	}, nil
}

// GetDetailedWeaknesses mines the stored enrichment JSON from recent
// attempts for the most frequent grammar errors, flagged basic words, and
// repeated tips, plus a first-half/second-half direction per criterion.
func (s *SQLiteStore) GetDetailedWeaknesses(ctx context.Context, limit int) (*WeaknessReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT grammar_corrections, vocabulary_upgrades, improvement_tips,
            fluency_coherence, lexical_resource, grammatical_range, pronunciation
        FROM attempts ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type attemptRow struct {
		corrections, upgrades, tips string
		criteria                    [4]float64
	}
	var recent []attemptRow
	for rows.Next() {
		var r attemptRow
		if err := rows.Scan(&r.corrections, &r.upgrades, &r.tips,
			&r.criteria[0], &r.criteria[1], &r.criteria[2], &r.criteria[3]); err != nil {
			return nil, err
		}
		recent = append(recent, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return &WeaknessReport{CriterionTrends: map[string]CriterionTrend{}}, nil
	}

	grammarCounter := make(map[[2]string]int)
	wordCounter := make(map[string]int)
	tipCounter := make(map[string]int)

	for _, r := range recent {
		var corrections []struct {
			Original  string `json:"original"`
			Corrected string `json:"corrected"`
		}
		if r.corrections != "" && json.Unmarshal([]byte(r.corrections), &corrections) == nil {
			for _, c := range corrections {
				orig := strings.TrimSpace(c.Original)
				corr := strings.TrimSpace(c.Corrected)
				if orig != "" && corr != "" {
					grammarCounter[[2]string{orig, corr}]++
				}
			}
		}

		var upgrades []struct {
			BasicWord string `json:"basic_word"`
		}
		if r.upgrades != "" && json.Unmarshal([]byte(r.upgrades), &upgrades) == nil {
			for _, u := range upgrades {
				if word := strings.ToLower(strings.TrimSpace(u.BasicWord)); word != "" {
					wordCounter[word]++
				}
			}
		}

		var tips []string
		if r.tips != "" && json.Unmarshal([]byte(r.tips), &tips) == nil {
			for _, tip := range tips {
				if tip = strings.TrimSpace(tip); tip != "" {
					tipCounter[tip]++
				}
			}
		}
	}

	report := &WeaknessReport{
		CriterionTrends: map[string]CriterionTrend{},
	}
	for _, kv := range topPairCounts(grammarCounter, 5) {
		report.GrammarErrors = append(report.GrammarErrors, GrammarErrorCount{
			Original: kv.key[0], Corrected: kv.key[1], Count: kv.count,
		})
	}
	for _, kv := range topStringCounts(wordCounter, 5) {
		report.BasicWords = append(report.BasicWords, BasicWordCount{Word: kv.key, Count: kv.count})
	}
	for _, kv := range topStringCounts(tipCounter, 5) {
		report.RecurringTips = append(report.RecurringTips, TipCount{Tip: kv.key, Count: kv.count})
	}

	// Directions compare the older half against the newer half, oldest first.
	labels := []string{"Fluency & Coherence", "Lexical Resource", "Grammar", "Pronunciation"}
	ordered := make([]attemptRow, len(recent))
	for i, r := range recent {
		ordered[len(recent)-1-i] = r
	}
	mid := len(ordered) / 2
	for ci, label := range labels {
		var all, firstHalf, secondHalf []float64
		for i, r := range ordered {
			v := r.criteria[ci]
			if v <= 0 {
				continue
			}
			all = append(all, v)
			if i < mid {
				firstHalf = append(firstHalf, v)
			} else {
				secondHalf = append(secondHalf, v)
			}
		}
		if len(all) == 0 {
			continue
		}
		direction := "insufficient data"
		if len(ordered) >= 4 && len(firstHalf) > 0 && len(secondHalf) > 0 {
			diff := mean(secondHalf) - mean(firstHalf)
			switch {
			case diff > 0.3:
				direction = "improving"
			case diff < -0.3:
				direction = "declining"
			default:
				direction = "stable"
			}
		}
		report.CriterionTrends[label] = CriterionTrend{Avg: round1(mean(all)), Direction: direction}
	}

	return report, nil
}

// ============================================================================
// Question bank
// ============================================================================

func (s *SQLiteStore) ListQuestions(ctx context.Context) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, part, topic, question_text, cue_card, source, band9_answer FROM questions ORDER BY part, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []question.Question
	for rows.Next() {
		var q question.Question
		if err := rows.Scan(&q.ID, &q.Part, &q.Topic, &q.Text, &q.CueCard, &q.Source, &q.Band9Answer); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *SQLiteStore) GetQuestion(ctx context.Context, id int64) (*question.Question, error) {
	var q question.Question
	err := s.db.QueryRowContext(ctx,
		"SELECT id, part, topic, question_text, cue_card, source, band9_answer FROM questions WHERE id = ?",
		id,
	).Scan(&q.ID, &q.Part, &q.Topic, &q.Text, &q.CueCard, &q.Source, &q.Band9Answer)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// SeedQuestions imports questions once; an already populated bank is left
// untouched. Returns the number of rows inserted.
func (s *SQLiteStore) SeedQuestions(ctx context.Context, questions []question.Question) (int, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&cnt); err != nil {
		return 0, err
	}
	if cnt > 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted := 0
	for _, q := range questions {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO questions (part, topic, question_text, cue_card, source, band9_answer) VALUES (?, ?, ?, ?, ?, ?)",
			q.Part, q.Topic, q.Text, q.CueCard, q.Source, q.Band9Answer,
		); err != nil {
			return 0, err
		}
		inserted++
	}
	return inserted, tx.Commit()
}

// ============================================================================
// Writing prompts
// ============================================================================

func (s *SQLiteStore) ListWritingPrompts(ctx context.Context, taskType int) ([]writingprompt.WritingPrompt, error) {
	query := "SELECT id, test_type, task_type, topic, prompt_text, chart_image_path, task1_data_json FROM writing_prompts"
	args := []any{}
	if taskType > 0 {
		query += " WHERE task_type = ?"
		args = append(args, taskType)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prompts []writingprompt.WritingPrompt
	for rows.Next() {
		var p writingprompt.WritingPrompt
		var testType string
		if err := rows.Scan(&p.ID, &testType, &p.TaskType, &p.Topic, &p.PromptText, &p.ChartImagePath, &p.Task1DataJSON); err != nil {
			return nil, err
		}
		p.TestType = writingprompt.TestType(testType)
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

func (s *SQLiteStore) GetWritingPrompt(ctx context.Context, id int64) (*writingprompt.WritingPrompt, error) {
	var p writingprompt.WritingPrompt
	var testType string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, test_type, task_type, topic, prompt_text, chart_image_path, task1_data_json FROM writing_prompts WHERE id = ?",
		id,
	).Scan(&p.ID, &testType, &p.TaskType, &p.Topic, &p.PromptText, &p.ChartImagePath, &p.Task1DataJSON)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.TestType = writingprompt.TestType(testType)
	return &p, nil
}

func (s *SQLiteStore) SeedWritingPrompts(ctx context.Context, prompts []writingprompt.WritingPrompt) (int, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM writing_prompts").Scan(&cnt); err != nil {
		return 0, err
	}
	if cnt > 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted := 0
	for _, p := range prompts {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO writing_prompts (test_type, task_type, topic, prompt_text, chart_image_path, task1_data_json) VALUES (?, ?, ?, ?, ?, ?)",
			string(p.TestType), p.TaskType, p.Topic, p.PromptText, p.ChartImagePath, p.Task1DataJSON,
		); err != nil {
			return 0, err
		}
		inserted++
	}
	return inserted, tx.Commit()
}

// ============================================================================
// Helpers
// ============================================================================

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

type pairCount struct {
	key   [2]string
	count int
}

func topPairCounts(counter map[[2]string]int, n int) []pairCount {
	items := make([]pairCount, 0, len(counter))
	for k, v := range counter {
		items = append(items, pairCount{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].key[0] < items[j].key[0]
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

type stringCount struct {
	key   string
	count int
}

func topStringCounts(counter map[string]int, n int) []stringCount {
	items := make([]stringCount, 0, len(counter))
	for k, v := range counter {
		items = append(items, stringCount{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].key < items[j].key
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}
