package contactlog

import (
	"fmt"
	"os"
	"time"

	"github.com/mcardoso/portfolio-backend/internal/contact/domain"
)

// Logbook is the append-only audit trail of contact attempts. One block
// per attempt, written whether or not delivery succeeded.
type Logbook struct {
	path string
}

func New(path string) *Logbook {
	return &Logbook{path: path}
}

// Append writes one attempt:
//
//	[#ok|fail <timestamp>] <name> <email>
//	<message>
//	<blank line>
func (l *Logbook) Append(sub domain.Submission, delivered bool) error {
	marker := "fail"
	if delivered {
		marker = "ok"
	}
	entry := fmt.Sprintf("[#%s %s] %s <%s>\n%s\n\n",
		marker, time.Now().UTC().Format(time.RFC3339), sub.Name, sub.Email, sub.Message)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(entry)
	return err
}
