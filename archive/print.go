package archive

import (
	"fmt"
	"io"

	"github.com/arloliu/mopaq/errs"
)

// The Write* helpers dump archive internals to a textual sink in the layout
// of the legacy inspection tool. They exist for the CLI front-end and for
// debugging; none of them are needed to read files.

// WriteHeaderInfo dumps the parsed archive header, and the user-data
// wrapper when present.
func (a *Archive) WriteHeaderInfo(w io.Writer) error {
	h := a.header

	fmt.Fprintln(w, "MPQ archive header")
	fmt.Fprintln(w, "------------------")
	fmt.Fprintf(w, "%-30s 0x%08X\n", "magic", h.Magic)
	fmt.Fprintf(w, "%-30s %d\n", "header_size", h.HeaderSize)
	fmt.Fprintf(w, "%-30s %d\n", "archive_size", h.ArchiveSize)
	fmt.Fprintf(w, "%-30s %d\n", "format_version", h.FormatVersion)
	fmt.Fprintf(w, "%-30s %d (sector size %d)\n", "sector_size_shift", h.SectorSizeShift, h.SectorSize())
	fmt.Fprintf(w, "%-30s 0x%X\n", "hash_table_offset", h.HashTableOffset64())
	fmt.Fprintf(w, "%-30s 0x%X\n", "block_table_offset", h.BlockTableOffset64())
	fmt.Fprintf(w, "%-30s %d\n", "hash_table_entries", h.HashTableEntries)
	fmt.Fprintf(w, "%-30s %d\n", "block_table_entries", h.BlockTableEntries)
	fmt.Fprintf(w, "%-30s 0x%X\n", "base_offset", h.BaseOffset)

	if h.FormatVersion >= 1 {
		fmt.Fprintf(w, "%-30s 0x%X\n", "extended_block_table_offset", h.ExtendedBlockTableOffset)
		fmt.Fprintf(w, "%-30s %d\n", "hash_table_offset_high", h.HashTableOffsetHigh)
		fmt.Fprintf(w, "%-30s %d\n", "block_table_offset_high", h.BlockTableOffsetHigh)
	}

	if h.UserData != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "MPQ user data header")
		fmt.Fprintln(w, "--------------------")
		fmt.Fprintf(w, "%-30s %d\n", "user_data_size", h.UserData.UserDataSize)
		fmt.Fprintf(w, "%-30s 0x%X\n", "mpq_header_offset", h.UserData.ArchiveOffset)
		fmt.Fprintf(w, "%-30s %d\n", "user_data_header_size", h.UserData.HeaderSize)
	}

	fmt.Fprintln(w)

	return nil
}

// WriteHashTable dumps the decrypted hash table.
func (a *Archive) WriteHashTable(w io.Writer) error {
	fmt.Fprintln(w, "MPQ archive hash table")
	fmt.Fprintln(w, "----------------------")
	fmt.Fprintln(w, " Hash A   Hash B  Locl Plat BlockIdx")
	for _, e := range a.hashTable {
		fmt.Fprintf(w, "%08X %08X %04X %04X %08X\n",
			e.HashA, e.HashB, e.Locale, e.Platform, e.BlockIndex)
	}
	fmt.Fprintln(w)

	return nil
}

// WriteBlockTable dumps the decrypted block table.
func (a *Archive) WriteBlockTable(w io.Writer) error {
	fmt.Fprintln(w, "MPQ archive block table")
	fmt.Fprintln(w, "-----------------------")
	fmt.Fprintln(w, " Offset  ArchSize RealSize  Flags")
	for _, e := range a.blockTable {
		fmt.Fprintf(w, "%08X %8d %8d %8X\n",
			e.Offset, e.ArchivedSize, e.Size, uint32(e.Flags))
	}
	fmt.Fprintln(w)

	return nil
}

// WriteFileList dumps the listfile members with their original sizes, and
// optionally the xxHash64 digest of each member's content.
func (a *Archive) WriteFileList(w io.Writer, withDigests bool) error {
	if a.files == nil {
		return fmt.Errorf("list files: %w", errs.ErrNoListfile)
	}

	width := 0
	for _, name := range a.files {
		if len(name) > width {
			width = len(name)
		}
	}
	width += 2

	fmt.Fprintln(w, "Files")
	fmt.Fprintln(w, "-----")
	for _, name := range a.files {
		block, err := a.resolve(name)
		if err != nil {
			fmt.Fprintf(w, "%-*s %8s\n", width, name, "missing")
			continue
		}

		if withDigests {
			digest, err := a.Digest(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%-*s %8d bytes  %016x\n", width, name, block.Size, digest)
			continue
		}

		fmt.Fprintf(w, "%-*s %8d bytes\n", width, name, block.Size)
	}

	return nil
}
