// Package paths resolves the directories fieldcheck reads and writes.
//
// It wraps github.com/adrg/xdg so the config file, the user-wide form
// library and the log file follow the XDG Base Directory conventions on
// every platform:
//
//	paths.ConfigDir() // ~/.config/fieldcheck/
//	paths.FormsDir()  // ~/.local/share/fieldcheck/forms/
//	paths.LogFile()   // ~/.local/state/fieldcheck/fieldcheck.log
//
// Projects can keep their own forms under .fieldcheck/forms; see
// [FormSearchDirs] for the lookup order.
package paths
