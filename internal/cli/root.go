package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbsqlite "github.com/turanbagtur/novel-translator/internal/adapters/db/sqlite"
	expcsv "github.com/turanbagtur/novel-translator/internal/adapters/exporter/csv"
	"github.com/turanbagtur/novel-translator/internal/adapters/prompt"
	"github.com/turanbagtur/novel-translator/internal/adapters/provider"
	apiapp "github.com/turanbagtur/novel-translator/internal/api/app"
	"github.com/turanbagtur/novel-translator/internal/config"
	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/logging"
	"github.com/turanbagtur/novel-translator/internal/ports"
	"github.com/turanbagtur/novel-translator/internal/usecase/batch"
	exporterusecase "github.com/turanbagtur/novel-translator/internal/usecase/exporter"
	glossaryusecase "github.com/turanbagtur/novel-translator/internal/usecase/glossary"
	"github.com/turanbagtur/novel-translator/internal/usecase/importer"
	translatorusecase "github.com/turanbagtur/novel-translator/internal/usecase/translator"
)

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "noveltrans",
	Short: "Manage and translate web novels with pluggable AI backends",
	Long: `noveltrans manages novel translation projects: chapters, a
per-project glossary, a translation cache and a cost ledger. Chapters
are translated through one of several AI or machine-translation
backends, with glossary terms extracted along the way.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Init(cfgFile)
		logger = logging.NewLogger(verbose)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default .noveltrans.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// container holds everything a command needs, wired once per run.
type container struct {
	db *sql.DB

	Projects  *apiapp.ProjectAPI
	Chapters  *apiapp.ChapterAPI
	Translate *apiapp.TranslateAPI
	Glossary  *apiapp.GlossaryAPI
	Configs   *apiapp.ConfigAPI
	Costs     *apiapp.CostAPI
	Jobs      *apiapp.JobAPI
	Export    *apiapp.ExportAPI
	Import    *apiapp.ImportAPI

	Runner *batch.Runner
	cfg    config.Config
}

func buildContainer() (*container, error) {
	cfg := config.Load()
	db, err := dbsqlite.Init(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	projectRepo := dbsqlite.NewProjectRepo(db)
	chapterRepo := dbsqlite.NewChapterRepo(db)
	glossaryRepo := dbsqlite.NewGlossaryRepo(db)
	cacheRepo := dbsqlite.NewCacheRepo(db)
	configRepo := dbsqlite.NewConfigRepo(db)
	costRepo := dbsqlite.NewCostRepo(db)
	jobRepo := dbsqlite.NewJobRepo(db)
	templateRepo := dbsqlite.NewTemplateRepo(db)

	builder := prompt.NewBuilder(templateRepo)
	engine := translatorusecase.New(translatorusecase.Deps{
		Projects: projectRepo,
		Chapters: chapterRepo,
		Glossary: glossaryRepo,
		Cache:    cacheRepo,
		Configs:  configRepo,
		Costs:    costRepo,
		Log:      logger,
		BuildProvider: func(ctx context.Context, apiCfg *domain.APIConfig, model string) (ports.Provider, error) {
			c := *apiCfg
			if model != "" {
				c.Model = model
			}
			return provider.New(ctx, c.ProviderName, &c, builder, cfg.ProviderTimeout)
		},
		DefaultCacheMode: cfg.CacheMode,
		ContextTail:      cfg.ContextTail,
	})

	runner := batch.NewRunner(batch.Deps{Jobs: jobRepo, Chapters: chapterRepo, Log: logger}, engine)
	glossarySvc := glossaryusecase.New(glossaryRepo)
	exportSvc := exporterusecase.New(projectRepo, chapterRepo, glossaryRepo, apiapp.NewDefaultExporterRegistry(), expcsv.New())
	importSvc := importer.New(chapterRepo)

	return &container{
		db:        db,
		Projects:  apiapp.NewProjectAPI(projectRepo),
		Chapters:  apiapp.NewChapterAPI(chapterRepo),
		Translate: apiapp.NewTranslateAPI(engine),
		Glossary:  apiapp.NewGlossaryAPI(glossarySvc, glossaryRepo),
		Configs:   apiapp.NewConfigAPI(configRepo),
		Costs:     apiapp.NewCostAPI(costRepo),
		Jobs:      apiapp.NewJobAPI(runner),
		Export:    apiapp.NewExportAPI(exportSvc, cfg.ExportDir),
		Import:    apiapp.NewImportAPI(importSvc),
		Runner:    runner,
		cfg:       cfg,
	}, nil
}

func (c *container) Close() {
	if c.db != nil {
		_ = c.db.Close()
	}
}
