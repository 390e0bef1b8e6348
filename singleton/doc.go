// Package singleton lazily constructs a single shared value.
//
// An Instance runs its constructor on the first Get and hands the same value
// to every later caller. A constructor error is returned to the caller and
// not remembered, so the next Get tries again.
//
//	db := singleton.New(func() (*sql.DB, error) {
//	    return sql.Open("postgres", dsn)
//	})
//
//	conn, err := db.Get()
package singleton
