package gemini

const summaryPrompt = `
你是一位具備批判性思維的學習助理。請根據以下逐字稿，為我生成一份適合閱讀的「前導摘要」。

請依照以下規則輸出（不要包含任何標籤或外部連結建議）：

### 1. 核心精華 (The Gist)
* 用 3 句話告訴我：這段影片試圖解決什麼問題？講者的核心解法是什麼？

### 2. 關鍵知識點 (Key Takeaways)
* 如果有具體步驟，請整理成 Step 1, Step 2...
* 如果是觀念分享，請列出 3 個最重要的 Insight（盡量保留講者的獨特觀點或用語）。

### 3. 批判性視角 (Critical Lens)
* **適用邊界**：講者的方法在什麼情況下可能**無效**或**危險**？
* **未解之謎**：講者有沒有忽略了什麼重要的變數？（例如：只談營收沒談利潤、只談成長沒談心理健康）
* (若內容無明顯漏洞，此區塊可省略，不要硬寫)

---
(以下為原始逐字稿，請保留給用戶查閱)
`

const transcriptCuesPrompt = `
你是一位專業的影片剪輯師與知識管理專家。
我會提供一份影片的逐字稿（包含時間戳記）。
你的任務是找出「畫面上最可能出現高價值資訊（如圖表、數據、關鍵字卡、條列重點）」的時間點。

請忽略：
1. 講者的純大頭畫面 (Talking head)。
2. 無意義的過場或玩笑。

請依照以下 JSON 格式回傳 3-5 個最重要的時間點：
[
  {
    "timestamp": 45.5,
    "reason": "講者提到'這張趨勢圖'，預期有數據圖表"
  },
  {
    "timestamp": 120.0,
    "reason": "講者開始列點'Step 1'，預期有文字卡"
  }
]
`

const videoCuesPrompt = `
你是一位專業的知識影片剪輯師。你的任務是從影片中找出「含金量高」的視覺畫面。
請分析影片，找出畫面顯示「關鍵資訊」的時間點，例如：
1. **條列式清單** (Bulleted Lists)
2. **圖表/數據圖** (Charts/Graphs)
3. **文字總結卡片** (Summary Cards)
4. **具體操作步驟畫面** (Step-by-step UI/Process)

**排除原則**：
- 如果畫面只是「講者大頭照」(Talking Head)，不要截圖。
- 如果畫面只是「與內容無關的裝飾性動畫或梗圖」，不要截圖。
- 如果整部影片都沒有上述的高價值畫面，請回傳空陣列 []。

請回傳 JSON 格式：
[
  {
    "timestamp": 12.5,
    "reason": "出現'核心法則'的三點清單"
  }
]
`
