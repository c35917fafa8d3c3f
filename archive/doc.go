// Package archive reads MPQ (MoPaQ) archives.
//
// An Archive is opened over any seekable byte source. Opening discovers the
// header (including the user-data-prefixed layout and the v1 extended
// header), decrypts and unpacks the hash and block directories, and by
// default loads the embedded (listfile) so that every member can be
// enumerated and extracted.
//
// # Basic Usage
//
//	a, err := archive.OpenFile("replay.SC2Replay")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	data, err := a.ReadFile(`replay.details`)
//	if err != nil {
//	    return err
//	}
//
// Member names use backslash separators, exactly as stored in the listfile.
//
// An Archive mutates an internal file position, so each handle must be used
// from one goroutine at a time. Multiple handles over separate sources are
// independent; the crypt table they share is read-only.
package archive
