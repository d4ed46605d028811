package replay

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// ErrRecordNotFound is returned by Load for an unknown ID.
var ErrRecordNotFound = errors.New("deal record not found")

// Driver names registered by the imported database/sql drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

const tableName = "deal_records"

// created_at is stored as fixed-width text so it sorts the same everywhere.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLStore persists records in a SQL table, one JSON payload per deal.
type SQLStore struct {
	db     *sql.DB
	driver string
	log    logrus.FieldLogger
	mu     sync.Mutex // serializes writes; SQLite allows one writer
	now    func() time.Time
}

// OpenSQLStore opens the database, checks the connection, and creates the
// table if needed.
func OpenSQLStore(ctx context.Context, driver, dsn string, log logrus.FieldLogger) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	s := NewSQLStore(db, driver, log)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an open database. driver selects the placeholder style.
func NewSQLStore(db *sql.DB, driver string, log logrus.FieldLogger) *SQLStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SQLStore{db: db, driver: driver, log: log, now: time.Now}
}

// Close closes the database.
func (s *SQLStore) Close() error { return s.db.Close() }

// Migrate creates the records table.
func (s *SQLStore) Migrate(ctx context.Context) error {
	stmt := `
	create table if not exists ` + tableName + ` (
		id text not null primary key,
		created_at text not null,
		dealer text not null,
		direction text not null,
		score_west integer not null,
		score_north integer not null,
		score_east integer not null,
		score_south integer not null,
		payload text not null
	);`
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create %s: %w", tableName, err)
	}
	return nil
}

// Save validates and inserts a record.
func (s *SQLStore) Save(ctx context.Context, r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, s.rebind(`insert into `+tableName+`
		(id, created_at, dealer, direction, score_west, score_north, score_east, score_south, payload)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		r.ID.String(), s.now().UTC().Format(timeLayout), r.Dealer.String(), r.Direction.String(),
		r.Score[0], r.Score[1], r.Score[2], r.Score[3], string(payload))
	if err != nil {
		return fmt.Errorf("insert record %s: %w", r.ID, err)
	}
	s.log.WithFields(logrus.Fields{"id": r.ID, "score": r.Score.String()}).Debug("Saved deal record")
	return nil
}

// Load returns the record with the given ID.
func (s *SQLStore) Load(ctx context.Context, id uuid.UUID) (Record, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, s.rebind(`select payload from `+tableName+` where id = ?`), id.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("select record %s: %w", id, err)
	}
	return decodeRecord(payload)
}

// List returns up to limit records, oldest first.
func (s *SQLStore) List(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`select payload from `+tableName+` order by created_at, id limit ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r, err := decodeRecord(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

// decodeRecord parses a stored payload and rejects malformed records.
func decodeRecord(payload string) (Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return Record{}, malformed("decode: %v", err)
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// rebind rewrites ? placeholders as $1, $2, ... for Postgres.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
