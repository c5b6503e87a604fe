// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/crypto"
	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vestachain/vesta/cmd/vesta/node"
	"github.com/vestachain/vesta/eventdb"
	"github.com/vestachain/vesta/genesis"
	"github.com/vestachain/vesta/log"
	"github.com/vestachain/vesta/lvldb"
	"github.com/vestachain/vesta/vesta"
)

// initLogger sets up the process wide logger and returns the level var
// the admin loglevel endpoint mutates at runtime.
func initLogger(lvl int, jsonLogs bool) *slog.LevelVar {
	output := io.Writer(os.Stdout)
	useColor := !jsonLogs && isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("TERM") != "dumb"

	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(lvl))

	var handler slog.Handler
	if jsonLogs {
		handler = log.JSONHandlerWithLevel(output, &level)
	} else {
		handler = log.NewTerminalHandlerWithLevel(output, &level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))

	// set go-ethereum log lvl to Warn
	ethlog.SetDefault(ethlog.NewLogger(ethlog.NewTerminalHandlerWithLevel(os.Stderr, ethlog.LevelWarn, useColor)))

	return &level
}

func selectGenesis(ctx *cli.Context) *genesis.Genesis {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet()
	}

	file, err := os.Open(path)
	if err != nil {
		fatal(fmt.Sprintf("open genesis file: %v", err))
	}
	defer file.Close()

	gen, err := genesis.ReadCustomGenesis(file)
	if err != nil {
		fatal(err)
	}

	customGen, err := genesis.NewCustomNet(gen)
	if err != nil {
		fatal(fmt.Sprintf("build genesis: %v", err))
	}
	return customGen
}

func makeConfigDir(ctx *cli.Context) string {
	configDir := ctx.String(configDirFlag.Name)
	if configDir == "" {
		fatal(fmt.Sprintf("unable to infer default config dir, use -%s to specify", configDirFlag.Name))
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create config dir [%v]: %v", configDir, err))
	}
	return configDir
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	dataDir := makeDataDir(ctx)

	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create instance dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

func openMainDB(ctx *cli.Context, dataDir string) *lvldb.LevelDB {
	cacheSize, err := readIntFromUInt64Flag(ctx.Uint64(cacheFlag.Name))
	if err != nil {
		fatal(fmt.Sprintf("parse cache flag: %v", err))
	}
	cacheMB := normalizeCacheSize(cacheSize)
	logger.Debug("cache size(MB)", "size", cacheMB)

	// the leveldb cache is invisible to Go's GC, lower the trigger accordingly
	gogc := math.Max(20, math.Min(100, 100/(float64(cacheMB)/1024)))
	logger.Debug("sanitize Go's GC trigger", "percent", int(gogc))
	debug.SetGCPercent(int(gogc))

	fdCache := suggestFDCache()
	logger.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		fatal(fmt.Sprintf("open main database [%v]: %v", dir, err))
	}
	return db
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		fatal("failed to get fd limit:", err)
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120
	}
	return n
}

func openMemMainDB() *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open main database: %v", err))
	}
	return db
}

func openEventDB(dataDir string) *eventdb.EventDB {
	path := filepath.Join(dataDir, "events.db")
	db, err := eventdb.New(path)
	if err != nil {
		fatal(fmt.Sprintf("open event database [%v]: %v", path, err))
	}
	return db
}

func openMemEventDB() *eventdb.EventDB {
	db, err := eventdb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open event database: %v", err))
	}
	return db
}

func masterKeyPath(ctx *cli.Context) string {
	configDir := makeConfigDir(ctx)
	return filepath.Join(configDir, "master.key")
}

func loadNodeMaster(ctx *cli.Context) *node.Master {
	if keyHex := ctx.String(masterKeyFlag.Name); keyHex != "" {
		key, err := crypto.HexToECDSA(keyHex)
		if err != nil {
			fatal("invalid master key:", err)
		}
		return &node.Master{PrivateKey: key}
	}
	if !ctx.IsSet(genesisFlag.Name) {
		// the first dev account owns the devnet ledger, so the default
		// master can drive the admin pause and recovery endpoints
		return &node.Master{PrivateKey: genesis.DevAccounts()[0].PrivateKey}
	}
	key, err := loadOrGeneratePrivateKey(masterKeyPath(ctx))
	if err != nil {
		fatal("load or generate master key:", err)
	}
	return &node.Master{PrivateKey: key}
}

func printStartupMessage(
	gene *genesis.Genesis,
	master *node.Master,
	dataDir string,
	apiURL string,
) {
	tableHead := `
┌────────────────────────────────────────────┬────────────────────────────────────────────────────────────────────┐
│                   Address                  │                             Private Key                            │`
	tableContent := `
├────────────────────────────────────────────┼────────────────────────────────────────────────────────────────────┤
│ %v │ %v │`
	tableEnd := `
└────────────────────────────────────────────┴────────────────────────────────────────────────────────────────────┘`

	info := fmt.Sprintf(`Starting %v
    Network      [ %v %v ]
    Master       [ %v ]
    Instance dir [ %v ]
    API portal   [ %v ]`,
		makeName("Vesta", fullVersion()),
		gene.ID(), gene.Name(),
		master.Address(),
		dataDir,
		apiURL)

	if gene.Name() == "devnet" {
		info += tableHead
		for _, a := range genesis.DevAccounts() {
			info += fmt.Sprintf(tableContent,
				a.Address,
				vesta.BytesToBytes32(crypto.FromECDSA(a.PrivateKey)),
			)
		}
		info += tableEnd
	}
	info += "\r\n"

	fmt.Print(info)
}
