package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/creditline/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// InitDB opens the sqlite database and ensures the schema the live
// confirmation store and member-size oracle read from. The aggregation
// engine itself never writes here; deal and confirmation rows are loaded
// by the booking-system sync jobs (out of scope for this service).
func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}
	migrateConfirmationsTable()

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS credit_deals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id INTEGER NOT NULL,
		deal_type TEXT NOT NULL,
		status TEXT NOT NULL,
		advance_number TEXT NOT NULL,
		trade_date TEXT,
		funding_date TEXT,
		maturity_date TEXT,
		current_par REAL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(member_id, advance_number)
	);

	CREATE TABLE IF NOT EXISTS confirmations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id INTEGER NOT NULL,
		advance_number TEXT NOT NULL,
		confirmation_number TEXT NOT NULL,
		confirmation_date TEXT NOT NULL,
		document_ref TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(member_id, advance_number, confirmation_number)
	);

	CREATE INDEX IF NOT EXISTS idx_credit_deals_member_status ON credit_deals(member_id, deal_type, status);
	CREATE INDEX IF NOT EXISTS idx_confirmations_member_advance ON confirmations(member_id, advance_number);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

// migrateConfirmationsTable adds columns introduced after the first release
// to an existing confirmations table.
func migrateConfirmationsTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='confirmations'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			if logger.L != nil {
				logger.L.Info("'confirmations' table does not exist, no migration needed as table will be created.")
			} else {
				stdlog.Println("'confirmations' table does not exist, no migration needed as table will be created.")
			}
			return
		}
		if logger.L != nil {
			logger.L.Error("Error checking for 'confirmations' table", "error", err)
		} else {
			stdlog.Printf("Error checking for 'confirmations' table: %v", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(confirmations)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for 'confirmations'", "error", err)
		} else {
			stdlog.Printf("Error querying table schema for 'confirmations': %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}

		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for 'confirmations'", "error", err)
			} else {
				stdlog.Printf("Error scanning column info for 'confirmations': %v", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for 'confirmations'", "error", err)
		} else {
			stdlog.Printf("Error iterating over column info for 'confirmations': %v", err)
		}
		return
	}

	if _, ok := columnExists["document_ref"]; !ok {
		_, err := DB.Exec("ALTER TABLE confirmations ADD COLUMN document_ref TEXT")
		if err != nil {
			logger.L.Error("Error adding 'document_ref' column to 'confirmations' table", "error", err)
		} else {
			logger.L.Info("Added 'document_ref' column to 'confirmations' table")
		}
	}
	if _, ok := columnExists["created_at"]; !ok {
		_, err := DB.Exec("ALTER TABLE confirmations ADD COLUMN created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP")
		if err != nil {
			logger.L.Error("Error adding 'created_at' column to 'confirmations' table", "error", err)
		} else {
			logger.L.Info("Added 'created_at' column to 'confirmations' table")
		}
	}
}
