package graph

import "github.com/specialistvlad/burstbuild/internal/murmur"

const rspfileSep = ";rspfile="

// Fingerprint returns the MurmurHash64A digest of the edge's command, with
// ";rspfile=" and the response file content appended when rspfile_content is
// non-empty. It is computed once; later calls return the cached digest (or
// the cached error) unchanged. Build logs compare this value across runs, so
// the byte layout must not change.
func (e *Edge) Fingerprint() (uint64, error) {
	e.hashOnce.Do(func() {
		e.hash, e.hashErr = e.fingerprint()
		e.setFlag(FlagHash)
	})
	return e.hash, e.hashErr
}

// HashComputed reports whether Fingerprint has run.
func (e *Edge) HashComputed() bool { return e.Flags()&FlagHash != 0 }

func (e *Edge) fingerprint() (uint64, error) {
	cmd, err := e.Command()
	if err != nil {
		return 0, err
	}
	rsp, _, err := e.Lookup("rspfile_content", true)
	if err != nil {
		return 0, err
	}
	if rsp == "" {
		return murmur.Sum64String(cmd), nil
	}
	buf := make([]byte, 0, len(cmd)+len(rspfileSep)+len(rsp))
	buf = append(buf, cmd...)
	buf = append(buf, rspfileSep...)
	buf = append(buf, rsp...)
	return murmur.Sum64(buf), nil
}
