package export

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/pkg/sftp"
)

// readOnlyHandler serves exported standings files below root. Writes and
// file commands are refused.
type readOnlyHandler struct {
	root string
}

var (
	_ sftp.FileLister = &readOnlyHandler{}
	_ sftp.FileReader = &readOnlyHandler{}
	_ sftp.FileWriter = &readOnlyHandler{}
	_ sftp.FileCmder  = &readOnlyHandler{}
)

// local maps a request path onto the export directory. Request paths are
// already cleaned to absolute form, so ".." cannot climb above root.
func (h *readOnlyHandler) local(r *sftp.Request) string {
	return filepath.Join(h.root, filepath.FromSlash(r.Filepath))
}

func (h *readOnlyHandler) Fileread(r *sftp.Request) (io.ReaderAt, error) {
	f, err := os.Open(h.local(r))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (h *readOnlyHandler) Filewrite(*sftp.Request) (io.WriterAt, error) {
	return nil, sftp.ErrSSHFxPermissionDenied
}

func (h *readOnlyHandler) Filecmd(*sftp.Request) error {
	return sftp.ErrSSHFxPermissionDenied
}

func (h *readOnlyHandler) Filelist(r *sftp.Request) (sftp.ListerAt, error) {
	var (
		infos []fs.FileInfo
		err   error
	)
	switch r.Method {
	case "List":
		infos, err = readDirInfo(h.local(r))
	case "Stat":
		var fi fs.FileInfo
		fi, err = os.Stat(h.local(r))
		infos = []fs.FileInfo{fi}
	default:
		return nil, sftp.ErrSSHFxOpUnsupported
	}
	if err != nil {
		return nil, err
	}
	return listerAt(infos), nil
}

func readDirInfo(dir string) ([]fs.FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	infos := make([]fs.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

type listerAt []fs.FileInfo

func (l listerAt) ListAt(ls []fs.FileInfo, offset int64) (int, error) {
	if offset >= int64(len(l)) {
		return 0, io.EOF
	}
	n := copy(ls, l[offset:])
	if n < len(ls) {
		return n, io.EOF
	}
	return n, nil
}

// SftpSubsystem serves root read-only over the "sftp" subsystem.
func SftpSubsystem(root string) ssh.SubsystemHandler {
	h := &readOnlyHandler{root: root}
	handlers := sftp.Handlers{FileGet: h, FilePut: h, FileCmd: h, FileList: h}
	return func(s ssh.Session) {
		srv := sftp.NewRequestServer(s, handlers)
		err := srv.Serve()
		if err == io.EOF {
			err = srv.Close()
		}
		if err != nil {
			wish.Fatalln(s, "sftp:", err)
		}
	}
}
