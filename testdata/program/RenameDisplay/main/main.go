package main

import "fmt"

//kinded:derive(display = "snake_case")
type Database interface{ isDatabase() }

type MySql struct{ Host string }
type PostgreSQL struct{ Host string }

//kinded:variant(rename = "sqlite")
type SQLite struct{ Path string }

func (MySql) isDatabase()      {}
func (PostgreSQL) isDatabase() {}
func (SQLite) isDatabase()     {}

// The display name of one variant shadows another variant's spelling. The
// renamed variant wins.
//
//kinded:derive(display = "lowercase")
type Fruit interface{ isFruit() }

type Apple struct{}

//kinded:variant(rename = "Apple")
type Pear struct{}

func (Apple) isFruit() {}
func (Pear) isFruit()  {}

func main() {
	for _, k := range DatabaseKind(0).All() {
		fmt.Printf("%v %#v\n", k, k)
	}
	for _, s := range []string{"my_sql", "MySql", "MySQL", "mysql", "postgre_sql", "PostgreSQL", "sqlite", "SQLite", "sq_lite"} {
		k, err := ParseDatabaseKind(s)
		fmt.Println(s, "=>", k, err)
	}

	for _, k := range FruitKind(0).All() {
		fmt.Printf("%v %#v\n", k, k)
	}
	for _, s := range []string{"Apple", "apple", "pear", "Pear", "APPLE"} {
		k, err := ParseFruitKind(s)
		fmt.Println(s, "=>", k, err)
	}
}
