package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// isDuplicateKey reports whether err is a MySQL unique-constraint violation
// (error 1062). The reservation path treats this as the canonical
// seat-already-taken signal rather than racing a check-then-insert.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
