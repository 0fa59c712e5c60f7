package macappbundler

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/macappbundler/pkg/commands/bundle"
	"github.com/arthur-debert/macappbundler/pkg/commands/initialize"
	"github.com/arthur-debert/macappbundler/pkg/commands/verify"
	"github.com/arthur-debert/macappbundler/pkg/diskimage"
	"github.com/arthur-debert/macappbundler/pkg/output"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

func dryRunRow(s *output.Section, dryRun bool) {
	if dryRun {
		s.AddStatus("Mode", MsgDryRunNotice, output.StatusWarning)
	}
}

func bundleReport(res *bundle.Result) *output.Report {
	report := &output.Report{Data: res}
	if res.Bundle != nil {
		b := res.Bundle
		report.Title = "Bundle " + b.AppName
		s := report.AddSection("Application").
			Add("Path", b.AppDir).
			Add("Deployment", string(b.Mode)).
			Add("Identifier", b.Variables.Get(variables.KeyBundleIdentifier)).
			Add("Executable", b.Variables.Get(variables.KeyBundleExecutable)).
			Add("Steps", strings.Join(b.Steps, ", ")).
			Add("Operations", fmt.Sprintf("%d in %s", len(b.Operations), b.Duration.Round(time.Millisecond)))
		dryRunRow(s, b.DryRun)
	}
	if res.DiskImage != nil {
		addDiskImage(report, res.DiskImage)
	}
	if res.Publish != nil {
		report.AddSection("Publish").AddStatus("URL", res.Publish.URL, output.StatusOK)
	}
	if len(res.Warnings) > 0 {
		s := report.AddSection("Warnings")
		for _, w := range res.Warnings {
			s.AddStatus("config", w, output.StatusWarning)
		}
	}
	return report
}

func addDiskImage(report *output.Report, res *diskimage.Result) {
	s := report.AddSection("Disk image").
		Add("Path", res.Path).
		Add("Staging", res.StagingDir)
	if res.Command.Name != "" {
		s.Add("Command", res.Command.Name+" "+strings.Join(res.Command.Args, " "))
	}
	if res.Checksum != "" {
		s.Add("Checksum", res.Checksum)
	}
	dryRunRow(s, res.DryRun)
}

func diskImageReport(res *diskimage.Result) *output.Report {
	report := &output.Report{Title: "Disk image", Data: res}
	addDiskImage(report, res)
	return report
}

func verifyReport(res *verify.Result) *output.Report {
	report := &output.Report{Title: "Verify " + res.AppDir, Data: res}
	s := report.AddSection("Checks")
	for _, c := range res.Checks {
		status := output.StatusOK
		switch c.Status {
		case verify.CheckFailed:
			status = output.StatusError
		case verify.CheckSkipped:
			status = output.StatusSkipped
		}
		s.AddStatus(c.Name, c.Message, status)
	}
	return report
}

func initReport(res *initialize.Result) *output.Report {
	report := &output.Report{Title: "Project initialized", Data: res}
	s := report.AddSection("Files")
	for _, f := range res.Files {
		s.AddStatus("written", f, output.StatusOK)
	}
	dryRunRow(s, res.DryRun)
	return report
}
