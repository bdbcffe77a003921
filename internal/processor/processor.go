package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/tweetlate/internal"
	"codeberg.org/snonux/tweetlate/internal/batch"
	"codeberg.org/snonux/tweetlate/internal/cli"
	"codeberg.org/snonux/tweetlate/internal/logging"
	"codeberg.org/snonux/tweetlate/internal/pipeline"
)

// TextProcessor turns one text into its processed form
type TextProcessor interface {
	Process(ctx context.Context, text string) pipeline.Result
}

// Summary counts what a run did
type Summary struct {
	RunID        string
	TotalTweets  int
	PartSize     int
	FirstPart    int
	LastPart     int
	PartsWritten int
	PartsFailed  int
	Translated   int
	Unchanged    int
	Failed       int
	Duration     time.Duration
}

// Texts returns the number of texts processed
func (s Summary) Texts() int {
	return s.Translated + s.Unchanged + s.Failed
}

// Processor handles the main corpus processing logic
type Processor struct {
	flags    *cli.Flags
	texts    TextProcessor
	log      logrus.FieldLogger
	runID    string
	out      io.Writer
	progress io.Writer
}

// NewProcessor creates a new corpus processor
func NewProcessor(flags *cli.Flags, texts TextProcessor, log logrus.FieldLogger) *Processor {
	if log == nil {
		log = logging.Discard()
	}

	p := &Processor{
		flags:    flags,
		texts:    texts,
		runID:    uuid.NewString(),
		out:      os.Stdout,
		progress: os.Stderr,
	}
	p.log = log.WithField("run_id", p.runID)
	if flags.Quiet {
		p.progress = nil
	}
	return p
}

// RunID identifies this run in the logs
func (p *Processor) RunID() string {
	return p.runID
}

// SetOutput redirects the summary and the progress bars, a nil progress
// writer disables the bars
func (p *Processor) SetOutput(out, progress io.Writer) {
	p.out = out
	p.progress = progress
}

// PartRange clamps the requested parts to [1, numParts]. An end of 0 means
// the last part.
func PartRange(start, end, numParts int) (int, int) {
	if start < 1 {
		start = 1
	}
	if end <= 0 || end > numParts {
		end = numParts
	}
	return start, end
}

// ProcessParts processes the requested parts of the corpus and writes one
// file per part. Only a failure to load the corpus or a canceled context
// returns an error.
func (p *Processor) ProcessParts(ctx context.Context) (Summary, error) {
	started := time.Now()
	summary := Summary{RunID: p.runID}

	tweets, err := batch.ReadCorpusFile(p.flags.InputFile)
	if err != nil {
		p.log.WithError(err).Error("Failed to load corpus")
		return summary, err
	}

	numParts := p.flags.NumParts
	plan, err := batch.PlanParts(len(tweets), numParts)
	if err != nil {
		return summary, err
	}

	start, end := PartRange(p.flags.StartPart, p.flags.EndPart, numParts)
	summary.TotalTweets = len(tweets)
	summary.PartSize = batch.PartSize(len(tweets), numParts)
	summary.FirstPart = start
	summary.LastPart = end

	p.log.WithFields(logrus.Fields{
		"input":      p.flags.InputFile,
		"tweets":     len(tweets),
		"part_size":  summary.PartSize,
		"start_part": start,
		"end_part":   end,
	}).Info("Loaded corpus")

	if start > end {
		p.log.Warnf("Start part %d is after end part %d, nothing to do", start, end)
	}

	for n := start; n <= end; n++ {
		part := plan[n-1]
		records := part.Slice(tweets)

		if err := p.processPart(ctx, part, records, &summary); err != nil {
			summary.Duration = time.Since(started)
			p.printSummary(summary)
			return summary, err
		}

		filename := internal.PartFileName(p.flags.OutputPrefix, part.Number)
		log := p.log.WithFields(logrus.Fields{"part": part.Number, "file": filename})
		if err := batch.WritePartFile(filename, records); err != nil {
			log.WithError(err).Error("Failed to save part")
			summary.PartsFailed++
			continue
		}
		summary.PartsWritten++
		log.WithField("tweets", len(records)).Info("Saved part")
	}

	summary.Duration = time.Since(started)
	p.printSummary(summary)
	return summary, nil
}

// processPart rewrites the content fields of records in place
func (p *Processor) processPart(ctx context.Context, part batch.Part, records []batch.Tweet, summary *Summary) error {
	log := p.log.WithField("part", part.Number)
	log.WithField("tweets", len(records)).Info("Processing part")

	bar := p.newBar(part, len(records))
	defer bar.Finish()

	for i := range records {
		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("Stopping before part was finished")
			return fmt.Errorf("part %d interrupted: %w", part.Number, err)
		}

		tweet := &records[i]
		log.WithField("tweet_id", tweet.IDString()).Debug("Processing tweet")

		if tweet.Content != "" {
			tweet.Content = p.process(ctx, tweet.Content, summary)
		}
		for j := range tweet.Comments {
			if tweet.Comments[j].Content != "" {
				tweet.Comments[j].Content = p.process(ctx, tweet.Comments[j].Content, summary)
			}
		}

		bar.Add(1)
	}

	return nil
}

func (p *Processor) process(ctx context.Context, text string, summary *Summary) string {
	res := p.texts.Process(ctx, text)
	switch res.Outcome {
	case pipeline.Translated:
		summary.Translated++
	case pipeline.Failed:
		summary.Failed++
	default:
		summary.Unchanged++
	}
	return res.Text
}

func (p *Processor) newBar(part batch.Part, records int) *progressbar.ProgressBar {
	if p.progress == nil || records == 0 {
		return progressbar.DefaultSilent(int64(records))
	}
	return progressbar.NewOptions(records,
		progressbar.OptionSetWriter(p.progress),
		progressbar.OptionSetDescription(fmt.Sprintf("part %d/%d", part.Number, p.flags.NumParts)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.progress) }),
	)
}

func (p *Processor) printSummary(s Summary) {
	fmt.Fprintf(p.out, "\n=== Translation Summary ===\n")
	fmt.Fprintf(p.out, "Run: %s\n", s.RunID)
	fmt.Fprintf(p.out, "Total tweets: %d (part size %d)\n", s.TotalTweets, s.PartSize)
	fmt.Fprintf(p.out, "Parts: %d to %d, %d written\n", s.FirstPart, s.LastPart, s.PartsWritten)
	fmt.Fprintf(p.out, "Texts: %d translated, %d unchanged\n", s.Translated, s.Unchanged)
	if s.Failed > 0 {
		fmt.Fprintf(p.out, "Failed texts (kept original): %d\n", s.Failed)
	}
	if s.PartsFailed > 0 {
		fmt.Fprintf(p.out, "Parts not saved: %d\n", s.PartsFailed)
	}
	fmt.Fprintf(p.out, "Duration: %s\n", s.Duration.Round(time.Millisecond))
	fmt.Fprintf(p.out, "===========================\n")
}
