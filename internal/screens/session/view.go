package session

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/minhvu/hoctot/internal/quiz"
	"github.com/minhvu/hoctot/internal/ui/components"
	"github.com/minhvu/hoctot/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	var body string

	switch {
	case s.errMsg != "":
		body = theme.Incorrect.Render("Không tạo được đề") + "\n\n" +
			theme.Body.Render(s.errMsg) + "\n\n" +
			theme.Hint.Render("Nhấn phím bất kỳ để thử lại")

	case s.step == stepTopic:
		body = theme.Title.Render("Luyện đề trắc nghiệm") + "\n\n" +
			theme.Body.Render("Em muốn luyện chủ đề gì?") + "\n\n" +
			s.topicInput.View()

	case s.step == stepDifficulty:
		body = theme.Title.Render("Chọn độ khó") + "\n\n" + s.diffMenu.View()

	case s.step == stepGenerating:
		body = theme.Title.Render("Đang tạo đề...") + "\n\n" +
			theme.Hint.Render(fmt.Sprintf("Chủ đề: %s · %s", s.topic, s.difficulty))

	case s.step == stepQuitConfirm:
		body = theme.Card.Render(
			theme.Body.Render("Dừng làm bài? Kết quả sẽ không được lưu.") + "\n\n" +
				theme.Incorrect.Render("[Y]") + theme.Body.Render(" Dừng    ") +
				theme.Correct.Render("[N]") + theme.Body.Render(" Tiếp tục"),
		)

	case s.attempt != nil:
		body = s.renderQuestion(width)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (s *SessionScreen) renderQuestion(width int) string {
	a := s.attempt
	q := a.CurrentQuestion()
	if q == nil {
		return ""
	}

	barWidth := width / 2
	if barWidth > 60 {
		barWidth = 60
	}
	progress := components.NewProgressBar(
		fmt.Sprintf("Câu %d/%d", a.Current+1, len(a.Questions)),
		float64(a.Current)/float64(len(a.Questions)),
		barWidth,
	)

	var answerArea string
	if s.mcActive {
		answerArea = s.mc.View()
	} else {
		answerArea = theme.Body.Render(q.Prompt) + "\n\n" + s.textInput.View()
	}

	body := progress.View() + "\n\n" + answerArea

	if a.Phase == quiz.PhaseFeedback {
		body += "\n" + s.renderFeedback(q.ID, q.Explanation)
	}

	return body
}

func (s *SessionScreen) renderFeedback(questionID int, explanation string) string {
	var verdict string
	if s.attempt.Correct[questionID] {
		verdict = theme.Correct.Render("Chính xác!")
	} else {
		verdict = theme.Incorrect.Render("Chưa đúng.")
	}

	out := verdict
	if explanation != "" {
		out += "\n" + theme.Hint.Render(explanation)
	}
	out += "\n" + theme.Hint.Render("Nhấn phím bất kỳ để tiếp tục")
	return out
}
