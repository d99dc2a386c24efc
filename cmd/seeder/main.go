package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/arcatext/newsift"
	"github.com/arcatext/newsift/core"
	"github.com/arcatext/newsift/ingestion"
)

// Seed headlines, "title|body" per entry.
var stories = []string{
	"Storm batters northern coast|Hurricane-force winds tore roofs from buildings along the northern coast overnight, leaving thousands without power.",
	"Coastal storm leaves thousands in the dark|Overnight winds of hurricane strength damaged buildings on the north coast and cut power to thousands of homes.",
	"Parliament passes budget after marathon session|Lawmakers approved the annual budget early Friday after an all-night sitting marked by heated exchanges.",
	"Central bank holds rates steady|The central bank left its benchmark interest rate unchanged, citing cooling inflation and a resilient labor market.",
	"New rail link cuts commute in half|The long-delayed suburban rail extension opened Monday, halving travel time for tens of thousands of commuters.",
	"Wildfire crews gain ground in the hills|Firefighters contained forty percent of the hillside blaze as winds eased, allowing some evacuees to return.",
	"River port reopens after dredging work|Cargo traffic resumed at the river port following three months of dredging that restored the shipping channel.",
	"Drought tightens water restrictions|Officials extended outdoor watering bans as reservoir levels fell to their lowest point in two decades.",
	"Museum unveils recovered bronze collection|The city museum put thirty recovered bronze artifacts on display, a decade after their theft.",
	"Fishing fleet reports record catch|Trawlers returned with a record haul this season, prompting calls for tighter quotas from conservation groups.",
	"Hospital expansion breaks ground|Construction began on a new wing that will add two hundred beds and an expanded emergency department.",
	"Tech campus brings thousand jobs north|A software company confirmed plans for a northern campus expected to employ a thousand people within three years.",
	"Ferry service suspended by engine fault|The island ferry was pulled from service after an engine fault was found during a routine inspection.",
	"Vintage air show draws record crowds|Restored warplanes drew the largest crowd in the air show's history under clear summer skies.",
	"City orchestra names new conductor|The city orchestra appointed its first new conductor in fifteen years ahead of the autumn season.",
	"Farmers race to harvest before the rain|Growers worked through the night to bring in wheat ahead of a week of forecast storms.",
	"Lighthouse restoration completed|The century-old lighthouse reopened to visitors after a two-year restoration of its lantern room and spiral stair.",
	"Marathon reroutes around bridge repairs|Organizers unveiled a new marathon course avoiding the closed harbor bridge, adding a loop through the old town.",
	"Library digitizes regional newspaper archive|A million pages of regional newspapers dating to 1870 are now searchable online, the library announced.",
	"Observatory spots distant supernova|Astronomers at the mountain observatory recorded a supernova in a galaxy sixty million light years away.",
	"Harbor seals return to restored wetlands|Wildlife officials counted the first seal pups born in the restored wetland preserve in forty years.",
	"Bakery wins national bread prize|A family bakery took the national prize for its rye loaf, beating two hundred entrants.",
	"Flood defences pass first winter test|The new flood barriers held back the highest tide in a decade without a single breach, engineers reported.",
	"School rooftop gardens expand citywide|Twenty more schools will add rooftop vegetable gardens after a pilot program cut cafeteria costs.",
}

var seedFileName = flag.String("src", "", "file of seed stories, one 'title|body' per line")
var criteria = flag.String("criteria", "storms flooding weather damage", "relevance criteria for classification")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// articlesFromLines parses 'title|body' lines into articles. Lines without a
// separator become title-only articles.
func articlesFromLines(source iter.Seq[string]) []*core.Article {
	var articles []*core.Article
	for line := range source {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		title, body, _ := strings.Cut(line, "|")
		articles = append(articles, &core.Article{
			Title: strings.TrimSpace(title),
			Body:  strings.TrimSpace(body),
			Link:  "seed://story/" + strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-"),
		})
	}
	return articles
}

// seedCollector feeds the prepared articles into the pipeline in place of a
// live RSS fetch.
type seedCollector struct {
	articles []*core.Article
}

func (s *seedCollector) Collect(_ context.Context, batchID core.ID, _ []string) []*core.Article {
	out := make([]*core.Article, len(s.articles))
	for i, a := range s.articles {
		copied := *a
		copied.BatchId = batchID
		out[i] = &copied
	}
	return out
}

func main() {
	db, err := newsift.NewDatabase("./news_db")
	if err != nil {
		panic(err)
	}
	defer db.Close()

	var source iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(stories)
	}

	pipeline, err := db.NewPipeline(
		ingestion.WithCollector(&seedCollector{articles: articlesFromLines(source)}))
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	batch, err := pipeline.Run(ctx, &core.Batch{
		Criteria:            *criteria,
		SimilarityThreshold: 0.85,
		RelevanceThreshold:  0.6,
	})
	if err != nil {
		panic(err)
	}

	slog.Info("seeded batch",
		"batch", batch.Id,
		"collected", batch.Stats.Collected,
		"duplicates", batch.Stats.Duplicates,
		"relevant", batch.Stats.Relevant)
}
