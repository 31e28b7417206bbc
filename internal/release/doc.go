// Package release resolves a GitHub-style release and picks the asset that
// matches the running platform.
//
// Resolution is a single GET against
//
//	<api>/repos/<owner>/<repo>/releases/latest
//	<api>/repos/<owner>/<repo>/releases/tags/<tag>
//
// The body is decoded permissively: unknown fields are ignored and, when the
// body is not valid JSON, the tag and asset URLs are recovered by scanning
// the text for "tag_name" and "browser_download_url" entries.
//
// Asset selection tries seven filename conventions in priority order; the
// first convention with any match wins, no matter where that asset sits in
// the release:
//
//  1. <name>-<os>-<arch>.tar.gz
//  2. <name>_<os>_<arch>.tar.gz
//  3. <name>-<os>-<arch>.zip
//  4. <name>_<os>_<arch>.zip
//  5. <name>-<os>-<arch>[.exe]
//  6. <name>_<os>_<arch>[.exe]
//  7. <name>[.exe]
package release
