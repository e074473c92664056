// Package database provides the SQLite run archive for ycscrape.
//
// Every successful scrape can be stored as a run together with its
// extracted companies, which allows later runs of the same industry to be
// listed and compared.
//
// The archive uses modernc.org/sqlite, a CGO-free driver, and keeps all
// data in a single ycscrape.db file under the XDG data directory.
package database
