package contactlog

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcardoso/portfolio-backend/internal/contact/domain"
)

func TestAppendFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact-log.txt")
	l := New(path)

	sub := domain.Submission{Name: "Maria", Email: "maria@example.com", Message: "Olá!\nGostei do site."}
	require.NoError(t, l.Append(sub, true))
	require.NoError(t, l.Append(sub, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	blocks := strings.Split(string(data), "\n\n")
	require.Len(t, blocks, 3, "two blocks plus trailing empty split")

	okHeader := regexp.MustCompile(`^\[#ok \d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z\] Maria <maria@example\.com>\n`)
	assert.Regexp(t, okHeader, blocks[0])
	assert.True(t, strings.HasSuffix(blocks[0], "Olá!\nGostei do site."))

	assert.True(t, strings.HasPrefix(blocks[1], "[#fail "))
}

func TestAppendCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact-log.txt")
	l := New(path)

	require.NoError(t, l.Append(domain.Submission{Name: "a", Email: "a@b.co", Message: "m"}, true))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
