package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/mealplanner/internal/domain"
	"github.com/alexanderramin/mealplanner/internal/service"
)

// Logged reports whether the plan store already logged err when it
// returned it, so callers should not report it again.
func Logged(err error) bool {
	return errors.Is(err, service.ErrPersistenceWrite) ||
		errors.Is(err, domain.ErrInvalidWeekCount) ||
		errors.Is(err, domain.ErrInvalidDate)
}

// PrintError writes a command failure to w, skipping errors the store
// already logged.
func PrintError(w io.Writer, err error) {
	if err == nil || Logged(err) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
