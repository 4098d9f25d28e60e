package tracing

import (
	"database/sql"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLiteTraceWriter is a Tracer that writes access records to a SQLite
// database.
type SQLiteTraceWriter struct {
	*sql.DB
	statement *sql.Stmt

	dbName             string
	recordsToWriteToDB []AccessRecord
	batchSize          int
}

// NewSQLiteTraceWriter creates a new SQLiteTraceWriter. If path is empty,
// a unique database name is generated.
func NewSQLiteTraceWriter(path string) *SQLiteTraceWriter {
	w := &SQLiteTraceWriter{
		dbName:    path,
		batchSize: 100000,
	}

	atexit.Register(func() { w.Flush() })

	return w
}

// Init establishes a connection to the database and prepares the schema.
func (t *SQLiteTraceWriter) Init() {
	if t.dbName == "" {
		t.dbName = "memsim_trace_" + xid.New().String()
	}

	t.createDatabase()
	t.createTable()
	t.prepareStatement()
}

// Trace buffers one access record, flushing the batch to the database
// when it is full.
func (t *SQLiteTraceWriter) Trace(rec AccessRecord) {
	t.recordsToWriteToDB = append(t.recordsToWriteToDB, rec)
	if len(t.recordsToWriteToDB) >= t.batchSize {
		t.Flush()
	}
}

// Flush writes all the buffered records to the database.
func (t *SQLiteTraceWriter) Flush() {
	if len(t.recordsToWriteToDB) == 0 {
		return
	}

	t.mustExecute("BEGIN TRANSACTION")
	defer t.mustExecute("COMMIT TRANSACTION")

	for _, rec := range t.recordsToWriteToDB {
		_, err := t.statement.Exec(
			rec.ID,
			int64(rec.Address),
			rec.Read,
			rec.Write,
			rec.L1Hit,
			rec.L2Hit,
		)
		if err != nil {
			panic(err)
		}
	}

	t.recordsToWriteToDB = nil
}

func (t *SQLiteTraceWriter) createDatabase() {
	filename := t.dbName + ".sqlite3"

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	t.DB = db
}

func (t *SQLiteTraceWriter) createTable() {
	t.mustExecute(`
		CREATE TABLE IF NOT EXISTS trace (
			id TEXT,
			address INTEGER,
			read INTEGER,
			write INTEGER,
			l1_hit INTEGER,
			l2_hit INTEGER
		)
	`)
}

func (t *SQLiteTraceWriter) prepareStatement() {
	stmt, err := t.Prepare(`
		INSERT INTO trace (id, address, read, write, l1_hit, l2_hit)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		panic(err)
	}

	t.statement = stmt
}

func (t *SQLiteTraceWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		panic(query + " failed: " + err.Error())
	}

	return res
}
