package types

// Client -> Server (menu channel)
// get_menu_items: {}
//
// menu_selection:
//   selection: string // menu item id, or "main" / "back"
//
// update_settings:
//   settings: Settings
//
// start_game:
//   settings: Settings
//   playerNames: string[] // local and AI matches only
//
// start_tournament_now: {}
//
// start_next_round: {}
//
// request_tournament_results: {}
//
// tournament_result:
//   winner: string // reported once per finished bracket match
//
// Server -> Client (menu channel)
// menu_items / show_main_menu / show_submenu:
//   menu_items: [{ id: string, text: string }]
//
// show_settings:
//   settings: Settings
//
// settings_updated:
//   settings: Settings // authoritative persisted values
//
// settings_error:
//   message: string
//
// searching_opponent:
//   message: string
//
// show_player_names:
//   num_players: number
//   tournament: boolean
//
// show_leaderboard: {}
//
// game_found:
//   game_id: string
//   player1: string
//   player2: string
//   playerRole: "player1" | "player2" | "both"
//   settings: Settings
//
// tournament_ready / update_tournament_results:
//   players: [{ tournament_name: string }]
//   round: number
//   total_rounds: number
//   matchups: [{ player1: string, player2: string }]
//   results: { [name]: number } // advancing players; absence means eliminated
//
// tournament_finished:
//   tournament_winner: string
//   match_history: [{ round, player1, player2, winner }]
//
// Client -> Server (game channel)
// player_info:
//   player_role: "player1" | "player2" | "both"
//   user_profile: UserProfile
//   settings: Settings
//
// player_ready:
//   player_role: string
//
// key_update:
//   keys: { [key]: boolean } // "a" | "d" | "ArrowLeft" | "ArrowRight"
//
// Settings:
//   ball_speed: number    // 1..10
//   paddle_speed: number  // 1..10
//   winning_score: number // 1..20
//   paddle_size: "small" | "middle" | "big"
//   mode: "local" | "online" | "AI" // optional
//   difficulty: string // AI mode only
//   is_tournament: boolean
