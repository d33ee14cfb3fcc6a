package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/benjamonnguyen/puttempo-go"
)

var (
	isProd  bool
	guildID string
)

func main() {
	flag.BoolVar(&isProd, "prod", false, "")
	flag.StringVar(&guildID, "guild", "", "register to a single guild instead of globally")
	flag.Parse()
	puttempo.LoadEnv(isProd)

	//
	cfg, err := puttempo.LoadConfig()
	if err != nil {
		log.Fatalln(err)
	}
	if err := cfg.RequireBotToken(); err != nil {
		log.Fatalln(err)
	}
	bot, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		log.Fatalln(err)
	}

	// Open a connection
	if err := bot.Open(); err != nil {
		log.Fatalln("Error opening connection:", err)
	}
	defer bot.Close() //nolint

	app, err := bot.Application("@me")
	if err != nil {
		log.Fatalln(err)
	}

	cmds := []*discordgo.ApplicationCommand{
		&puttempo.TempoCommand,
		&puttempo.StopCommand,
		&puttempo.StatsCommand,
	}

	created, err := bot.ApplicationCommandBulkOverwrite(app.ID, guildID, cmds)
	if err != nil {
		log.Fatalln(err)
	}

	for _, cmd := range created {
		fmt.Printf("%s: %s\n", cmd.Name, cmd.Description)
	}
}
