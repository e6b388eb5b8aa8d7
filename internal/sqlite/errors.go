package sqlite

import (
	"fmt"

	"github.com/kulesy/TimePro-MCP/internal/repository"
)

func corruptDate(id int, raw string) error {
	return fmt.Errorf("%w: timesheet %d has date %q", repository.ErrCorrupt, id, raw)
}
