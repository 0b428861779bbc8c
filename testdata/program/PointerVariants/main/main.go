package main

import (
	"fmt"

	"github.com/sublee/kinded"
)

//kinded:derive
type Database interface{ isDB() }

type Postgres struct{ DSN string }
type SQLite struct{ Path string }
type Memory struct{}

func (*Postgres) isDB() {}
func (*SQLite) isDB()   {}
func (Memory) isDB()    {}

func main() {
	var p *Postgres
	fmt.Println(DatabaseKindOf(p))
	fmt.Println(p.Kind())

	var db Database = p
	fmt.Println(DatabaseKindOfPtr(&db))
	fmt.Println(DatabaseKindOf(&SQLite{Path: "kinded.db"}))

	var m *Memory
	fmt.Println(DatabaseKindOf(m))
	fmt.Println(DatabaseKindOf(Memory{}))

	k, ok := kinded.KindOf[DatabaseKind](p)
	fmt.Println(k, ok)
	_, ok = kinded.KindOf[DatabaseKind](Postgres{})
	fmt.Println(ok)
}
