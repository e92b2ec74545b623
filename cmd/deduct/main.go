package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"strings"

	"deductive/engine"
	"deductive/repl"
	"deductive/syntax"
)

func main() {
	var (
		kbPath = flag.String("kb", "", "Knowledge-base source file (optional)")
		query  = flag.String("query", "", "One-shot query (non-interactive mode)")
	)
	flag.Parse()

	db := engine.NewDatabase()
	predicates := engine.NewDefaultPredicates()

	if *kbPath != "" {
		if err := loadKnowledgeBase(db, *kbPath); err != nil {
			log.Fatal(err)
		}
	}

	if *query != "" {
		if err := repl.Run(db, predicates, strings.NewReader(*query), os.Stdout, nil); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := repl.Run(db, predicates, os.Stdin, os.Stdout, os.Stdin); err != nil {
		log.Fatal(err)
	}
}

func loadKnowledgeBase(db *engine.Database, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	terms, err := syntax.Read(bufio.NewReader(f))
	if err != nil {
		return err
	}
	for _, t := range terms {
		db.Add(t)
	}
	return nil
}
