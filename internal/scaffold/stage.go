package scaffold

// Stage is a state of a scaffolding run. Runs move through the stages in
// declaration order; optional stages are skipped when not requested.
type Stage string

// Stages of a run.
const (
	StageInit                      Stage = "init"
	StageDirectoryCreated          Stage = "directory-created"
	StagePlatformTemplatesCopied   Stage = "platform-templates-copied"
	StageRemoteTemplatesFetched    Stage = "remote-templates-fetched"
	StageTailwindOverlayFetched    Stage = "tailwind-overlay-fetched"
	StageSubstituted               Stage = "substituted"
	StageRenamed                   Stage = "renamed"
	StageVersionControlInitialized Stage = "version-control-initialized"
	StageDone                      Stage = "done"
)

// Activity describes the work that leads to s, for progress messages.
func (s Stage) Activity() string {
	switch s {
	case StageDirectoryCreated:
		return "Creating project directory"
	case StagePlatformTemplatesCopied:
		return "Adding platform-specific folders"
	case StageRemoteTemplatesFetched:
		return "Fetching React template"
	case StageTailwindOverlayFetched:
		return "Adding Tailwind CSS"
	case StageSubstituted:
		return "Configuring project files"
	case StageRenamed:
		return "Renaming project files"
	case StageVersionControlInitialized:
		return "Initializing git repository"
	case StageDone:
		return "Project created"
	default:
		return string(s)
	}
}

// Reporter observes a run. Calls happen on the scaffolding goroutine and
// must not block for long.
type Reporter interface {
	// Starting is called before the work leading to stage begins.
	Starting(stage Stage)
	// Reached is called once stage has been reached.
	Reached(stage Stage)
}

type nopReporter struct{}

func (nopReporter) Starting(Stage) {}
func (nopReporter) Reached(Stage)  {}
