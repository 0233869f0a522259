// Package output renders atelier-cli results for humans and scripts.
//
// Table and KV are the human side: commands build them cell by cell so
// each listing controls its own columns (session tables add LAST ACTIVE
// and USER AGENT in wide mode, for example). JSONFormatter and
// YAMLFormatter are the script side, selected with --output. Spinner
// gives feedback while a command waits on a server round trip.
package output
