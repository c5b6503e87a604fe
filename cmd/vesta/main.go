// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vestachain/vesta/api"
	"github.com/vestachain/vesta/cmd/vesta/httpserver"
	"github.com/vestachain/vesta/cmd/vesta/node"
	"github.com/vestachain/vesta/co"
	"github.com/vestachain/vesta/eventdb"
	"github.com/vestachain/vesta/genesis"
	"github.com/vestachain/vesta/health"
	"github.com/vestachain/vesta/ledger"
	"github.com/vestachain/vesta/log"
	"github.com/vestachain/vesta/lvldb"
	"github.com/vestachain/vesta/metrics"
	"github.com/vestachain/vesta/state"
	"github.com/vestachain/vesta/token"
	"github.com/vestachain/vesta/vesta"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Vesta",
		Usage:     "Node of the VestaChain staking ledger",
		Copyright: "2025 VestaChain <https://vestachain.org/>",
		Flags: []cli.Flag{
			genesisFlag,
			configDirFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			masterKeyFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiEventsLimitFlag,
			enableAPILogsFlag,
			pprofFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		fatal(fmt.Sprintf("parse verbosity flag: %v", err))
	}
	logLevel := initLogger(lvl, ctx.Bool(jsonLogsFlag.Name))

	gene := selectGenesis(ctx)

	var (
		mainDB      *lvldb.LevelDB
		eventDB     *eventdb.EventDB
		instanceDir string
	)
	if ctx.Bool(persistFlag.Name) {
		instanceDir = makeInstanceDir(ctx, gene)
		mainDB = openMainDB(ctx, instanceDir)
		eventDB = openEventDB(instanceDir)
	} else {
		instanceDir = "Memory"
		mainDB = openMemMainDB()
		eventDB = openMemEventDB()
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	if err := gene.Initialize(mainDB); err != nil {
		fatal(fmt.Sprintf("initialize genesis state: %v", err))
	}

	master := loadNodeMaster(ctx)

	stater := state.NewStater(mainDB)
	led := ledger.New(
		genesis.ContractAddress,
		stater,
		nil, // system clock
		func(st *state.State) ledger.Token { return token.NewVST(genesis.TokenAddress, st) },
		func(addr vesta.Address, st *state.State) ledger.Token { return token.NewBook(addr, st) },
	)
	defer func() { logger.Info("closing ledger..."); led.Close() }()

	healthStatus := health.New(node.HealthProbeInterval)
	tick := &co.Signal{}

	logAPIRequests := &atomic.Bool{}
	logAPIRequests.Store(ctx.Bool(enableAPILogsFlag.Name))

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			fatal(fmt.Sprintf("unable to start metrics server - %v", err))
		}
		logger.Info("metrics server started", "url", url)
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
	}

	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := httpserver.StartAdminServer(
			ctx.String(adminAddrFlag.Name),
			logLevel,
			healthStatus,
			led,
			master.Address(),
			logAPIRequests,
		)
		if err != nil {
			fatal(fmt.Sprintf("unable to start admin server - %v", err))
		}
		logger.Info("admin server started", "url", url)
		defer func() { logger.Info("stopping admin server..."); closeFunc() }()
	}

	apiHandler, apiCloser := api.New(
		led,
		stater,
		func(st *state.State) ledger.Token { return token.NewVST(genesis.TokenAddress, st) },
		eventDB,
		tick,
		healthStatus,
		logAPIRequests,
		api.Options{
			AllowedOrigins: ctx.String(apiCorsFlag.Name),
			PprofOn:        ctx.Bool(pprofFlag.Name),
			EnableMetrics:  ctx.Bool(enableMetricsFlag.Name),
			EventsLimit:    ctx.Uint64(apiEventsLimitFlag.Name),
		},
	)
	defer func() { logger.Info("closing API..."); apiCloser() }()

	apiURL, srvCloser, err := httpserver.StartAPIServer(
		ctx.String(apiAddrFlag.Name),
		apiHandler,
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
	)
	if err != nil {
		fatal(fmt.Sprintf("unable to start API server - %v", err))
	}
	defer func() { logger.Info("stopping API server..."); srvCloser() }()

	printStartupMessage(gene, master, instanceDir, apiURL)

	healthStatus.BootstrapStatus(true)

	return node.New(led, eventDB, tick, healthStatus).Run(exitSignal)
}
