package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// SeedPassword is the password every seeded operator account starts with.
const SeedPassword = "Passw0rd!"

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Mock customer/transaction datasets (idempotent; safe to run every start)
	if err := seedDatasets(db); err != nil {
		return nil, err
	}
	// Operator accounts only when the table is empty
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Sessions: sid cookie -> backend bearer token
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  token TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);

-- Dashboard operators
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('Admin','Manager','Staff')),
  status TEXT NOT NULL DEFAULT 'Active' CHECK (status IN ('Active','Inactive')),
  password_hash TEXT NOT NULL,
  last_login TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Customers (read-only mock dataset)
CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  orders INTEGER NOT NULL DEFAULT 0,
  total_spent NUMERIC NOT NULL DEFAULT 0,
  last_order TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT ''
);

-- Transactions (read-only mock dataset)
CREATE TABLE IF NOT EXISTS transactions(
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  customer TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  status TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  date TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);

-- Stock adjustments made from the inventory screen
CREATE TABLE IF NOT EXISTS inventory_adjustments(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  delta INTEGER NOT NULL,
  reason TEXT NOT NULL DEFAULT '',
  new_qty INTEGER NOT NULL CHECK (new_qty >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_adjustments_product ON inventory_adjustments(product_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedDatasets(db *sqlx.DB) error {
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO customers(id,name,email,phone,orders,total_spent,last_order,created_at) VALUES
	  ('cust_001','John Doe','john.doe@example.com','+1 (555) 123-4567',5,349.95,'2023-03-15T10:30:00Z','2022-11-05T08:15:00Z'),
	  ('cust_002','Jane Smith','jane.smith@example.com','+1 (555) 987-6543',12,1249.5,'2023-03-20T14:45:00Z','2022-08-12T11:30:00Z'),
	  ('cust_003','Robert Johnson','robert.johnson@example.com','+1 (555) 456-7890',3,189.97,'2023-02-28T09:15:00Z','2023-01-20T16:45:00Z'),
	  ('cust_004','Emily Davis','emily.davis@example.com','+1 (555) 234-5678',8,729.85,'2023-03-18T12:00:00Z','2022-09-30T10:20:00Z'),
	  ('cust_005','Michael Wilson','michael.wilson@example.com','+1 (555) 876-5432',1,59.99,'2023-03-10T15:30:00Z','2023-02-15T09:10:00Z'),
	  ('cust_006','Sarah Brown','sarah.brown@example.com','+1 (555) 345-6789',15,1875.25,'2023-03-22T11:45:00Z','2022-07-05T14:30:00Z'),
	  ('cust_007','David Miller','david.miller@example.com','+1 (555) 765-4321',6,459.94,'2023-03-05T10:15:00Z','2022-12-10T08:45:00Z'),
	  ('cust_008','Jennifer Taylor','jennifer.taylor@example.com','+1 (555) 432-1098',9,879.92,'2023-03-19T16:30:00Z','2022-10-25T13:20:00Z')
	  ON CONFLICT(id) DO NOTHING`)

	tx.MustExec(`INSERT INTO transactions(id,order_id,customer,amount,status,payment_method,date) VALUES
	  ('txn_001','ORD-12345','John Doe',129.99,'Completed','Credit Card','2023-03-15T10:30:00Z'),
	  ('txn_002','ORD-12346','Jane Smith',89.95,'Completed','PayPal','2023-03-14T14:45:00Z'),
	  ('txn_003','ORD-12347','Robert Johnson',199.5,'Pending','Credit Card','2023-03-14T09:15:00Z'),
	  ('txn_004','ORD-12348','Emily Davis',45.75,'Completed','Debit Card','2023-03-13T12:00:00Z'),
	  ('txn_005','ORD-12349','Michael Wilson',299.99,'Failed','Credit Card','2023-03-13T15:30:00Z'),
	  ('txn_006','ORD-12350','Sarah Brown',149.95,'Refunded','PayPal','2023-03-12T11:45:00Z'),
	  ('txn_007','ORD-12351','David Miller',79.99,'Completed','Debit Card','2023-03-12T10:15:00Z'),
	  ('txn_008','ORD-12352','Jennifer Taylor',159.95,'Completed','Credit Card','2023-03-11T16:30:00Z')
	  ON CONFLICT(id) DO NOTHING`)

	return tx.Commit()
}

func seedUsers(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	log.Println("[seed] inserting operator accounts")

	h, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users := []struct{ id, name, email, role, status, lastLogin string }{
		{"user_001", "John Smith", "john.smith@ponnamhardware.com", "Admin", "Active", "2023-03-15T10:30:00Z"},
		{"user_002", "Sarah Johnson", "sarah.johnson@ponnamhardware.com", "Manager", "Active", "2023-03-20T14:45:00Z"},
		{"user_003", "Michael Brown", "michael.brown@ponnamhardware.com", "Staff", "Inactive", "2023-02-28T09:15:00Z"},
		{"user_004", "Emily Davis", "emily.davis@ponnamhardware.com", "Manager", "Active", "2023-03-18T12:00:00Z"},
		{"user_005", "Robert Wilson", "robert.wilson@ponnamhardware.com", "Staff", "Active", "2023-03-10T15:30:00Z"},
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()
	for _, u := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,name,email,role,status,password_hash,last_login)
			VALUES(?,?,?,?,?,?,?)
			ON CONFLICT(id) DO NOTHING
		`, u.id, u.name, u.email, u.role, u.status, string(h), u.lastLogin); err != nil {
			return err
		}
	}
	return tx.Commit()
}
