// Package backup keeps copies of config and form files before fieldcheck
// overwrites them.
//
// Each backup is a timestamped directory holding the copied file and a
// manifest.json that records where it came from and its SHA-256 hash:
//
//	<DataHome>/fieldcheck/backups/
//	└── {kind}/
//	    └── {id}/
//	        ├── manifest.json
//	        └── {file}
//
// Restores verify the hash before copying the file back. Only the most
// recent DefaultRetentionCount backups of each kind are kept.
package backup
