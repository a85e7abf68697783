package vault

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hashicorp/vault/api"
)

// PathNotFoundError reports that the backend has no secret at the given
// logical path. The mv and cp destination probe recovers from it; every
// other caller surfaces it to the user.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path %q does not exist", e.Path)
}

// MountNotFoundError reports that no configured mount point covers the
// given logical path. It is raised before any backend call and indicates
// misconfiguration rather than a missing secret.
type MountNotFoundError struct {
	Path string
}

func (e *MountNotFoundError) Error() string {
	return fmt.Sprintf("path %q is not under a valid mount point", e.Path)
}

// isNotFoundResponse reports whether err is a backend response with status
// 404. The API client swallows most read/list 404s into nil secrets, but
// write-shaped requests (login among them) surface them as response errors.
func isNotFoundResponse(err error) bool {
	var respErr *api.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
