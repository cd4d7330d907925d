// Package backupkit stores and filters backup artifacts.
//
// A [Destination] owns one storage location and exposes read ([FileReader])
// and write ([FileWriter]) operations over [File] identifiers. A file's id is
// its storage-relative name; its metadata is an arbitrary key/value map that
// destinations implementing [CanSidecar] persist next to the artifact.
//
// # Destinations
//
// The directory destination keeps each artifact as a plain file in a single
// local directory:
//
//	import "github.com/gobeaver/backupkit/destination/directory"
//
//	store, err := directory.New("/var/backups/site")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	file := backupkit.NewReadableFile("/tmp/site-2024-05-01.sql")
//	file.SetMeta("source", "default_db")
//	if err := store.SaveFile(ctx, file); err != nil {
//	    log.Fatal(err)
//	}
//
// SaveFile moves the content into the store. Within one device this is a
// rename; across devices the content is copied, verified with the configured
// [ChecksumAlgorithm] and only then is the source removed.
//
// Listing is ordered by name and paginated with a count and a start offset:
//
//	files, err := store.ListFiles(ctx, backupkit.DefaultListCount, 0)
//
// Hidden files, sidecars, directories and unreadable entries are never
// listed or counted.
//
// # Configuration
//
// Destinations can be created from environment variables:
//
//	// BEAVER_BACKUPKIT_DESTINATION=directory
//	// BEAVER_BACKUPKIT_DIRECTORY=/var/backups/site
//	dest, err := backupkit.NewFromEnv()
//
// Use [WithPrefix] for a different prefix. Destinations register themselves
// with [RegisterDestination]; import a destination package for its side
// effect to make it available to [New].
//
// # Read-only access
//
// [NewReadOnly] wraps a destination so saves and deletes fail with
// [ErrReadOnly]. Setting BEAVER_BACKUPKIT_READ_ONLY=true applies it in [New].
//
// # Exclusion
//
// The filter subpackage removes paths from a backup run by glob pattern. See
// github.com/gobeaver/backupkit/filter.
//
// # Error Handling
//
// Errors are wrapped in [*PathError] and match the package sentinels:
//
//	if backupkit.IsNotExist(err) {
//	    // missing artifact
//	}
//	if backupkit.IsPartialSave(err) {
//	    // artifact stored, metadata sidecar lost
//	}
package backupkit
