package namecache

// global is the process-wide cache behind the package-level functions.
var global Cache

// --- Package-level API (delegates to global) ---

// Find looks text up in the process-wide cache.
func Find(text string) (Handle, bool) { return global.Find(text) }

// Intern stores text in the process-wide cache and returns its handle.
func Intern(text string) Handle { return global.Intern(text) }

// Resolve returns the text of a handle issued by Intern.
func Resolve(h Handle) string { return global.Resolve(h) }

// Len returns the number of handles issued by the process-wide cache.
func Len() int { return global.Len() }
