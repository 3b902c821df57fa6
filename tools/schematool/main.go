package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"

	"floe/catalog"
	"floe/lib/schema"

	"github.com/alexflint/go-arg"
	"go.uber.org/zap"
)

type SchemaToolArg struct {
	Path  string `arg:"positional,required" help:"catalog metadata file"`
	Mode  string `arg:"--mode" default:"list" help:"'list', 'show' or 'drop'"`
	Table string `arg:"--table" default:"" help:"table name, required for 'show' and 'drop'"`
}

func main() {
	var args SchemaToolArg
	arg.MustParse(&args)

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}
	defer logger.Sync()

	c, err := catalog.Open(args.Path, logger)
	if err != nil {
		logger.Fatal("could not open catalog", zap.Error(err))
	}
	defer c.Close()

	switch args.Mode {
	case "list":
		names, err := c.ListTables()
		if err != nil {
			logger.Fatal("could not list tables", zap.Error(err))
		}
		for _, name := range names {
			fmt.Println(name)
		}
	case "show":
		if args.Table == "" {
			logger.Fatal("'show' needs --table")
		}
		sc, err := c.LoadTable(args.Table)
		if err != nil {
			logger.Fatal("could not load table", zap.String("table", args.Table), zap.Error(err))
		}
		data, err := schema.ToJson(sc)
		if err != nil {
			logger.Fatal("could not serialize schema", zap.Error(err))
		}
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, data, "", "  "); err != nil {
			logger.Fatal("could not format schema", zap.Error(err))
		}
		fmt.Println(pretty.String())
	case "drop":
		if args.Table == "" {
			logger.Fatal("'drop' needs --table")
		}
		if err := c.DropTable(args.Table); err != nil {
			logger.Fatal("could not drop table", zap.String("table", args.Table), zap.Error(err))
		}
	default:
		logger.Fatal("invalid mode: valid modes are 'list', 'show' or 'drop'",
			zap.String("mode", args.Mode))
	}
}
