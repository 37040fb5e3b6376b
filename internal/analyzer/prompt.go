package analyzer

import (
	"encoding/json"
	"fmt"

	"donorcrm/internal/model"
)

// promptSampleSize 提示词里附带的匿名记录样本条数
const promptSampleSize = 10

// BuildAnalysisPrompt 组装捐赠数据分析提示词
// 只嵌入聚合摘要和匿名化样本，个人信息在此之前已经剔除
func BuildAnalysisPrompt(summary *model.Summary, anonymized []model.Record) string {
	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		summaryJSON = []byte("{}")
	}

	sample := anonymized
	if len(sample) > promptSampleSize {
		sample = sample[:promptSampleSize]
	}
	sampleJSON, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		sampleJSON = []byte("[]")
	}

	return fmt.Sprintf(`Ты - эксперт по анализу данных донорских организаций. Проанализируй следующие обезличенные данные:

АГРЕГИРОВАННЫЕ СТАТИСТИКИ:
%s

ОБРАЗЦЫ ОБЕЗЛИЧЕННЫХ ДАННЫХ (первые %d записей):
%s

ОБЩАЯ ИНФОРМАЦИЯ:
- Всего записей: %d
- Все персональные данные удалены для конфиденциальности
- Данные включают информацию о пожертвованиях, датах, суммах и источниках

Сделай комплексный анализ данных по следующим пунктам:

### Комплексный анализ данных донорских организаций

#### 1. Общая структура данных
- Общее количество записей и их распределение
- Анализ полноты данных
- Выявление пропущенных значений

#### 2. Ключевые тренды и паттерны
**А. Временные паттерны:**
- Сезонность пожертвований
- Пиковые периоды активности
- Долгосрочные тренды

**Б. Суммы пожертвований:**
- Распределение по размерам донатов
- Средние, минимальные и максимальные значения
- Анализ выбросов

**В. Источники данных:**
- Анализ источников поступлений
- Эффективность различных каналов

#### 3. Финансовые индикаторы
- Общая сумма пожертвований
- Средний размер доната
- Динамика изменений

#### 4. Рекомендации
- Практические советы по оптимизации
- Потенциальные области роста
- Риски и возможности

Отвечай на русском языке, используй конкретные цифры из данных, делай выводы на основе статистики.`,
		summaryJSON, promptSampleSize, sampleJSON, len(anonymized))
}
