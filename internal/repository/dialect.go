package repository

import "github.com/jmoiron/sqlx"

// dialect covers the few clauses that differ between the supported databases.
type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
	dialectOracle
)

func dialectOf(db *sqlx.DB) dialect {
	switch db.DriverName() {
	case "pgx", "postgres":
		return dialectPostgres
	case "oracle":
		return dialectOracle
	default:
		return dialectSQLite
	}
}

func (d dialect) randomOrder() string {
	if d == dialectOracle {
		return "DBMS_RANDOM.VALUE"
	}
	return "RANDOM()"
}

// paginate appends the row limiting clause and returns its arguments in placeholder order.
func (d dialect) paginate(query string, limit, offset int) (string, []interface{}) {
	if d == dialectSQLite {
		return query + " LIMIT ? OFFSET ?", []interface{}{limit, offset}
	}
	return query + " OFFSET ? ROWS FETCH NEXT ? ROWS ONLY", []interface{}{offset, limit}
}
