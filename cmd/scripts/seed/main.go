package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/jessevdk/go-flags"
	"github.com/jobly/jobly/pkg/companies"
	"github.com/jobly/jobly/pkg/config"
	"github.com/jobly/jobly/pkg/database"
	"github.com/jobly/jobly/pkg/jobs"
	"github.com/jobly/jobly/pkg/migrations"
	"github.com/jobly/jobly/pkg/models"
	"github.com/robinjoseph08/golib/logger"
)

var titles = []string{
	"Software Engineer",
	"Data Scientist",
	"Product Manager",
	"Site Reliability Engineer",
	"Designer",
	"Technical Writer",
}

func main() {
	ctx := context.Background()
	log := logger.New()

	var opts struct {
		Companies      int `short:"c" long:"companies" default:"5" description:"Number of companies to create"`
		JobsPerCompany int `short:"j" long:"jobs-per-company" default:"3" description:"Number of jobs to create for each company"`
	}

	_, err := flags.Parse(&opts)
	if err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	_, err = migrations.BringUpToDate(ctx, db)
	if err != nil {
		log.Err(err).Fatal("migrations error")
	}

	companyService := companies.NewService(db)
	jobService := jobs.NewService(db)

	created := 0
	for i := 1; i <= opts.Companies; i++ {
		employees := rand.IntN(1000)
		company := &models.Company{
			Handle:       fmt.Sprintf("company-%d", i),
			Name:         fmt.Sprintf("Company %d", i),
			Description:  "Seeded company",
			NumEmployees: &employees,
		}
		if err := companyService.CreateCompany(ctx, company); err != nil {
			log.Err(err).Fatal("create company error")
		}

		for j := 0; j < opts.JobsPerCompany; j++ {
			salary := 40000 + rand.IntN(160000)
			equity := models.Equity(strconv.FormatFloat(float64(rand.IntN(100))/1000, 'f', -1, 64))
			job := &models.Job{
				Title:         titles[rand.IntN(len(titles))],
				Salary:        &salary,
				Equity:        &equity,
				CompanyHandle: company.Handle,
			}
			if err := jobService.CreateJob(ctx, job); err != nil {
				log.Err(err).Fatal("create job error")
			}
			created++
		}
	}

	log.Info("seeded database", logger.Data{"companies": opts.Companies, "jobs": created})

	if err := db.Close(); err != nil {
		log.Err(err).Error("database close error")
	}
}
