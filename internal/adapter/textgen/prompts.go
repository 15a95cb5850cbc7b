package textgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/util"
)

const (
	summaryCharLimit    = 45000
	summaryMaxSentences = 800
)

// buildExcludeBlock renders the avoid-these-questions hint. Only the
// first excludeLimit entries are embedded to bound prompt size; the
// rest are still enforced by the caller's similarity filter.
func buildExcludeBlock(exclude []string, excludeLimit int) string {
	if len(exclude) == 0 {
		return ""
	}
	if len(exclude) > excludeLimit {
		exclude = exclude[:excludeLimit]
	}
	var b strings.Builder
	b.WriteString("หลีกเลี่ยงการตั้งคำถามคล้ายกับ:\n")
	for _, q := range exclude {
		b.WriteString("- " + q + "\n")
	}
	return b.String()
}

// buildTopicBlock renders the one-question-per-topic instruction,
// capped at the requested question count.
func buildTopicBlock(topics []string, count int) string {
	if len(topics) == 0 {
		return ""
	}
	if len(topics) > count {
		topics = topics[:count]
	}
	var b strings.Builder
	b.WriteString("ให้สร้าง 'หัวข้อละ 1 ข้อ' จากหัวข้อต่อไปนี้:\n")
	for _, t := range topics {
		b.WriteString("- " + t + "\n")
	}
	return b.String()
}

func (g *Generator) buildMCQPrompt(req domain.GenerationRequest) string {
	return fmt.Sprintf(`สร้างข้อสอบปรนัย %d ข้อ จากเนื้อหาด้านล่าง
- คำตอบถูกมีเพียงข้อเดียว
- ห้ามตัวเลือกแบบ "ถูกทุกข้อ/ทั้ง ก และ ข/ไม่ถูกสักข้อ"
- ตอบ JSON: {"questions":[{"type":"mcq","question":"...","choices":["ก) ...","ข) ...","ค) ...","ง) ..."],"answer":"ก|ข|ค|ง","explain":"...","topic":"..."}]}
%s%sเนื้อหา:
%s`,
		req.Count,
		buildTopicBlock(req.Topics, req.Count),
		buildExcludeBlock(req.Exclude, g.limits.ExcludeHintLimit),
		util.TruncateChars(req.Content, g.limits.ContextCharLimit),
	)
}

func (g *Generator) buildTFPrompt(req domain.GenerationRequest) string {
	return fmt.Sprintf(`สร้างข้อสอบ ถูก/ผิด จำนวน %d ข้อ จากเนื้อหาด้านล่าง
- ให้เหตุผลสั้น ๆ ทุกข้อ
- ตอบ JSON: {"questions":[{"type":"tf","question":"...","answer":"true|false","explain":"...","topic":"..."}]}
%s%sเนื้อหา:
%s`,
		req.Count,
		buildTopicBlock(req.Topics, req.Count),
		buildExcludeBlock(req.Exclude, g.limits.ExcludeHintLimit),
		util.TruncateChars(req.Content, g.limits.ContextCharLimit),
	)
}

func (g *Generator) buildTopicsPrompt(content string) string {
	return fmt.Sprintf(`สกัดหัวข้อ/แนวคิดสำคัญจากเนื้อหาด้านล่าง (ไม่เกิน 30 หัวข้อ)
ตอบ JSON: {"topics":["หัวข้อ1","หัวข้อ2"]}
เนื้อหา:
%s`, util.TruncateChars(content, g.limits.ContextCharLimit))
}

func buildSectionsPrompt(numbered []string) string {
	return fmt.Sprintf(`คุณเป็นครูบรรณาธิการสรุปเอกสารแบบยึดตามข้อความเท่านั้น
- อ่านเฉพาะ "รายการประโยคมีเลขกำกับ"
- สกัดหัวข้อหลัก 5–9 หัวข้อ และสรุปหัวข้อละ 3–6 ประโยค
ตอบเป็น JSON: {"sections":[{"title":"...","summary":"..."}]}
รายการประโยค:
%s`, strings.Join(numbered, "\n"))
}

func buildOverviewPrompt(content string, sections []domain.SummarySection) string {
	sectionsJSON, _ := json.Marshal(struct {
		Sections []domain.SummarySection `json:"sections"`
	}{Sections: sections})
	return fmt.Sprintf(`คุณเป็นผู้ช่วยสรุประดับอาจารย์ ใช้เฉพาะข้อมูลจาก "รายการประโยค" และ "หัวข้อ" ด้านล่าง
ตอบ JSON เดียว: {"overview":"...","key_points":["..."],"data_points":[{"label":"...","value":"...","unit":"..."}]}
รายการประโยค:
%s
หัวข้อ:
%s`, util.TruncateChars(content, summaryCharLimit), string(sectionsJSON))
}

func (g *Generator) buildQAPrompt(content, question string) string {
	return fmt.Sprintf(`ตอบคำถามโดยอ้างอิง "เฉพาะ" เนื้อหาที่ให้ด้านล่างเท่านั้น
ถ้าไม่พบคำตอบ ให้ตอบว่า: ไม่พบในเนื้อหาที่ให้มา
เนื้อหา:
%s

คำถาม: %s
ตอบ:`, util.TruncateChars(content, g.limits.ContextCharLimit), question)
}

// numberedSentences renders "[i] sentence" lines for the sections
// prompt, bounded to summaryMaxSentences.
func numberedSentences(content string) []string {
	sents := util.SplitSentences(content)
	if len(sents) > summaryMaxSentences {
		sents = sents[:summaryMaxSentences]
	}
	out := make([]string, 0, len(sents))
	for i, s := range sents {
		out = append(out, fmt.Sprintf("[%d] %s", i+1, s))
	}
	return out
}
