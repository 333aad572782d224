package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/emptyOVO/mrkit-gender/batch"
)

func getenvDefault(name, d string) string {
	v := os.Getenv(name)
	if v == "" {
		return d
	}
	return v
}

func getenvInt(name string, d int) int {
	v := os.Getenv(name)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return d
	}
	return n
}

// Reads partners and companies from MySQL, classifies the partner names with
// a local reference file and writes both statistics tables back to MySQL.
func main() {
	db := batch.DBConfig{
		Driver:   "mysql",
		Host:     getenvDefault("MYSQL_HOST", "localhost"),
		Port:     getenvInt("MYSQL_PORT", 3306),
		User:     getenvDefault("MYSQL_USER", "root"),
		Password: getenvDefault("MYSQL_PASSWORD", "123456"),
		Database: getenvDefault("MYSQL_DB", "receita"),
	}

	cfg := batch.FlowConfig{
		Job: batch.JobAll,
		Source: batch.FlowSourceConfig{
			Type: "sql",
			DB:   db,
			Config: batch.SourceConfig{
				Table:     getenvDefault("PARTNER_TABLE", "socios"),
				Columns:   []string{"cnpj", "nome_socio"},
				Shards:    getenvInt("SOURCE_SHARDS", 8),
				Parallel:  getenvInt("SOURCE_PARALLEL", 4),
				OutputDir: "txt/partners",
			},
		},
		Reference: batch.FlowReferenceConfig{Path: getenvDefault("REFERENCE", "first_names.csv")},
		Transform: batch.FlowTransformConfig{Workers: 8},
		Sinks: []batch.FlowSinkConfig{{
			Type:   "mysql",
			DB:     db,
			Config: batch.SinkConfig{TargetTable: "partner_gender", Replace: true},
		}},
		Company: batch.FlowCompanyConfig{
			Source: batch.FlowSourceConfig{
				Type: "sql",
				DB:   db,
				Config: batch.SourceConfig{
					Table:      getenvDefault("COMPANY_TABLE", "empresas"),
					Columns:    []string{"cnpj", "situacao", "capital_social", "cnae_fiscal"},
					OutputDir:  "txt/companies",
					FilePrefix: "company",
				},
			},
			Sinks: []batch.FlowSinkConfig{{
				Type:   "mysql",
				DB:     db,
				Config: batch.SinkConfig{TargetTable: "cnae_gender", Replace: true},
			}},
		},
	}

	report, err := batch.RunFlow(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(report.Partners)
	fmt.Println(report.Categories)
}
