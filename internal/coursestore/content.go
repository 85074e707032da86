package coursestore

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"careerhub/client/internal/api"
)

// ModuleContent is one module of the course-details view with its lessons.
// Failed holds when the lesson lookup for this module did not resolve; the
// other modules render normally.
type ModuleContent struct {
	Module  api.Module
	Lessons []api.Lesson
	Failed  bool
}

// FetchCourseContent loads a course's modules and fans out one lesson fetch
// per module. The whole batch resolves before returning; a single module's
// failure degrades that module only.
func FetchCourseContent(ctx context.Context, client *api.Client, courseID string, log zerolog.Logger) ([]ModuleContent, error) {
	modules, err := client.ListCourseModules(ctx, courseID)
	if err != nil {
		return nil, err
	}

	content := make([]ModuleContent, len(modules))
	var wg sync.WaitGroup
	for i, mod := range modules {
		content[i].Module = mod

		wg.Add(1)
		go func(i int, moduleID string) {
			defer wg.Done()
			lessons, err := client.ListModuleLessons(ctx, moduleID)
			if err != nil {
				log.Warn().Err(err).Str("module_id", moduleID).Msg("lesson fetch failed")
				content[i].Failed = true
				return
			}
			content[i].Lessons = lessons
		}(i, mod.ID)
	}
	wg.Wait()

	return content, nil
}

// TotalLessons counts the lessons across the resolved modules.
func TotalLessons(content []ModuleContent) int {
	total := 0
	for _, mc := range content {
		total += len(mc.Lessons)
	}
	return total
}
